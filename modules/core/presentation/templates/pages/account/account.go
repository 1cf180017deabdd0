package account

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/session"
)

const (
	ProfileID   = "account-profile"
	ChangeEvent = "accountChanged"
)

type IndexPageProps struct {
	User        session.User
	Permissions []string
	ExpiresAt   string
}

// Profile is the swappable block refreshed after a permission reload.
func Profile(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		language := p.User.Language
		for _, l := range intl.SupportedLanguages {
			if l.Code == language {
				language = l.VerboseName
			}
		}
		b.Raw(`<div class="flex flex-col gap-4"`).Attr("id", ProfileID).Raw(`>`)
		b.Component(ctx, base.Card(intl.T(ctx, "Account.Profile", "Profile"), base.DefinitionList(
			[2]string{intl.T(ctx, "Account.Name", "Name"), p.User.Name},
			[2]string{intl.T(ctx, "Account.Email", "Email"), p.User.Email},
			[2]string{intl.T(ctx, "Account.Role", "Role"), p.User.Role},
			[2]string{intl.T(ctx, "Account.Language", "Language"), language},
			[2]string{intl.T(ctx, "Account.SessionExpires", "Session expires"), p.ExpiresAt},
		)))
		perms := base.Func(func(ctx context.Context, b *base.Writer) {
			if len(p.Permissions) == 0 {
				b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Account.NoPermissions", "No permissions granted.")).Raw(`</p>`)
				return
			}
			b.Raw(`<ul class="flex flex-wrap gap-2">`)
			for _, perm := range p.Permissions {
				b.Raw(`<li data-permission`).Attr("title", perm).Raw(`>`).Component(ctx, base.Badge(perm, base.BadgeGray)).Raw(`</li>`)
			}
			b.Raw(`</ul>`)
		})
		b.Component(ctx, base.Card(intl.T(ctx, "Account.Permissions", "Permissions"), perms))
		b.Raw(`</div>`)
	})
}

func Index(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Account.Meta.Title", "My account")
		refresh := base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Label:   intl.T(ctx, "Account.Refresh", "Reload permissions"),
			Attrs: templ.Attributes{
				"hx-post":   "/account/refresh",
				"hx-target": "#" + ProfileID,
				"hx-swap":   "outerHTML",
			},
		})
		subtitle := strings.TrimSpace(p.User.Email)
		content := base.Join(base.PageHeader(title, subtitle, refresh), Profile(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}
