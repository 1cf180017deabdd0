package layouts

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/types"
)

const (
	SpotlightURL       = "/spotlight/search"
	SpotlightResultsID = "spotlight-results"
	ContentID          = "content"
)

type AuthenticatedProps struct {
	BaseProps
}

func currentPath(ctx context.Context) string {
	if pageCtx, ok := composables.TryUsePageCtx(ctx); ok && pageCtx.URL != nil {
		return pageCtx.URL.Path
	}
	return ""
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

func navLink(ctx context.Context, b *base.Writer, item types.NavigationItem, path string) {
	class := "flex items-center gap-3 rounded-md px-3 py-2 text-sm text-gray-700 hover:bg-gray-100"
	if isActive(item.Href, path) {
		class = "flex items-center gap-3 rounded-md bg-brand-50 px-3 py-2 text-sm font-medium text-brand-700"
	}
	b.Raw(`<a`).Attr("href", item.Href).Attr("class", class).Raw(`>`)
	b.Component(ctx, item.Icon)
	b.Raw(`<span>`).Text(item.Name).Raw(`</span></a>`)
}

func Sidebar() templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		path := currentPath(ctx)
		b.Raw(`<aside class="hidden w-60 shrink-0 border-r border-gray-200 bg-white md:block"><div class="flex h-14 items-center gap-2 border-b border-gray-200 px-4 font-semibold text-brand-700">`)
		b.Component(ctx, icons.TreeStructure(icons.Props{Size: "22"}))
		b.Raw(`<a href="/">`).Text(intl.T(ctx, "App.Name", "Worktrack")).Raw(`</a></div><nav class="flex flex-col gap-1 p-3" aria-label="main">`)
		for _, item := range composables.UseNavItems(ctx) {
			if len(item.Children) == 0 {
				navLink(ctx, b, item, path)
				continue
			}
			b.Raw(`<div class="mt-3"><p class="flex items-center gap-2 px-3 pb-1 text-xs font-semibold uppercase tracking-wide text-gray-400">`)
			b.Component(ctx, item.Icon)
			b.Text(item.Name).Raw(`</p>`)
			for _, child := range item.Children {
				navLink(ctx, b, child, path)
			}
			b.Raw(`</div>`)
		}
		b.Raw(`</nav></aside>`)
	})
}

// Spotlight is the debounced quick-link search in the top bar.
func Spotlight() templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="relative w-full max-w-md"><label class="flex items-center gap-2 rounded-md border border-gray-300 bg-white px-3 py-1.5 text-gray-500">`)
		b.Component(ctx, icons.MagnifyingGlass(icons.Props{Size: "16"}))
		b.Raw(`<input type="search" name="q" autocomplete="off" class="w-full border-0 p-0 text-sm focus:outline-none"`).
			Attr("placeholder", intl.T(ctx, "Spotlight.Placeholder", "Search pages")).
			Attr("hx-get", SpotlightURL).
			Attr("hx-trigger", composables.UseConfig(ctx).SearchDebounceTrigger()).
			Attr("hx-target", "#"+SpotlightResultsID).
			Raw(`></label><div class="absolute left-0 right-0 top-full z-40 mt-1"`).Attr("id", SpotlightResultsID).Raw(`></div></div>`)
	})
}

// LanguageSwitch posts the chosen UI language to the account page.
func LanguageSwitch() templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		current := lang(ctx)
		b.Raw(`<form method="post" action="/account/language" class="flex items-center gap-1 text-xs">`)
		for _, l := range intl.SupportedLanguages {
			class := "rounded px-2 py-1 text-gray-500 hover:bg-gray-100"
			if l.Code == current {
				class = "rounded bg-gray-100 px-2 py-1 font-medium text-gray-900"
			}
			b.Raw(`<button type="submit" name="language"`).Attr("value", l.Code).Attr("class", class).Raw(`>`).Text(l.VerboseName).Raw(`</button>`)
		}
		b.Raw(`</form>`)
	})
}

func userMenu() templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		u, err := composables.UseUser(ctx)
		if err != nil {
			return
		}
		b.Raw(`<div class="flex items-center gap-3">`)
		b.Component(ctx, LanguageSwitch())
		b.Raw(`<a href="/account" class="flex items-center gap-2 text-sm text-gray-700 hover:text-gray-900">`)
		b.Component(ctx, base.Avatar(u.Name))
		b.Raw(`<span class="hidden sm:inline" data-user-name>`).Text(u.Name).Raw(`</span></a>`)
		b.Raw(`<form method="post" action="/logout">`)
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonGhost,
			Type:    "submit",
			Label:   intl.T(ctx, "NavigationLinks.Logout", "Log out"),
			Class:   "px-2 py-1",
		}))
		b.Raw(`</form></div>`)
	})
}

// Authenticated wraps content with the sidebar and the top bar.
func Authenticated(p AuthenticatedProps, content templ.Component) templ.Component {
	shell := base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex min-h-screen">`)
		b.Component(ctx, Sidebar())
		b.Raw(`<div class="flex min-w-0 flex-1 flex-col"><header class="flex h-14 items-center justify-between gap-4 border-b border-gray-200 bg-white px-6">`)
		b.Component(ctx, Spotlight())
		b.Component(ctx, userMenu())
		b.Raw(`</header><main class="flex-1 p-6"`).Attr("id", ContentID).Raw(`>`)
		b.Component(ctx, content)
		b.Raw(`</main></div></div>`)
	})
	return Base(p.BaseProps, shell)
}

// Page picks the authenticated shell for signed-in users and the bare
// document otherwise.
func Page(ctx context.Context, title string, content templ.Component) templ.Component {
	if _, err := composables.UseSession(ctx); err == nil {
		return Authenticated(AuthenticatedProps{BaseProps{Title: title}}, content)
	}
	return Base(BaseProps{Title: title}, base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<main class="mx-auto max-w-3xl p-6">`).Component(ctx, content).Raw(`</main>`)
	}))
}
