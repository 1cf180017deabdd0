package login

import (
	"context"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/pkg/intl"
)

type LoginProps struct {
	Email  string
	Next   string
	Error  string
	Errors map[string]string
}

func form(p *LoginProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<form method="post" action="/login" class="flex flex-col gap-4" data-login-form>`)
		if p.Error != "" {
			b.Raw(`<div class="rounded bg-red-50 px-3 py-2 text-sm text-red-700" role="alert">`).Text(p.Error).Raw(`</div>`)
		}
		b.Component(ctx, base.Hidden("Next", p.Next))
		b.Component(ctx, base.Input(base.InputProps{
			Name:     "Email",
			Type:     "email",
			Label:    intl.T(ctx, "Login.Email", "Email"),
			Value:    p.Email,
			Required: true,
			Error:    p.Errors["Email"],
			Attrs:    templ.Attributes{"autocomplete": "username", "autofocus": true},
		}))
		b.Component(ctx, base.Input(base.InputProps{
			Name:     "Password",
			Type:     "password",
			Label:    intl.T(ctx, "Login.Password", "Password"),
			Required: true,
			Error:    p.Errors["Password"],
			Attrs:    templ.Attributes{"autocomplete": "current-password"},
		}))
		b.Component(ctx, base.Button(base.ButtonProps{
			Type:  "submit",
			Label: intl.T(ctx, "Login.Submit", "Sign in"),
			Class: "w-full",
		}))
		b.Raw(`</form>`)
	})
}

func Index(p *LoginProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		content := base.Func(func(ctx context.Context, b *base.Writer) {
			b.Raw(`<main class="flex min-h-screen items-center justify-center p-6"><div class="w-full max-w-sm rounded-lg border border-gray-200 bg-white p-8 shadow-sm">`)
			b.Raw(`<div class="mb-6 flex flex-col items-center gap-2 text-brand-700">`)
			b.Component(ctx, icons.TreeStructure(icons.Props{Size: "36"}))
			b.Raw(`<h1 class="text-xl font-semibold text-gray-900">`).Text(intl.T(ctx, "Login.Title", "Sign in to Worktrack")).Raw(`</h1></div>`)
			b.Component(ctx, form(p))
			b.Raw(`<div class="mt-6 flex justify-center">`).Component(ctx, layouts.LanguageSwitch()).Raw(`</div>`)
			b.Raw(`</div></main>`)
		})
		b.Component(ctx, layouts.Base(layouts.BaseProps{Title: intl.T(ctx, "Login.Meta.Title", "Sign in")}, content))
	})
}
