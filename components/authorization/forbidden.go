// Package authorization renders the access-denied view.
package authorization

import (
	"context"
	"sort"
	"strings"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/intl"
)

type ForbiddenProps struct {
	// Permission is the check that failed, when known.
	Permission string
	// State contributes the permissions recorded as missing during the request.
	State      *authz.ViewState
	RequestURL string
	BackURL    string
}

// MissingPermissions merges the failed permission with the ones recorded on
// the view state, normalized, deduplicated and sorted.
func (p ForbiddenProps) MissingPermissions() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(perm string) {
		perm = authz.NormalizePermission(perm)
		if perm == "" {
			return
		}
		if _, ok := seen[perm]; ok {
			return
		}
		seen[perm] = struct{}{}
		out = append(out, perm)
	}
	add(p.Permission)
	if p.State != nil {
		for _, perm := range p.State.MissingPermissions {
			add(perm)
		}
	}
	sort.Strings(out)
	return out
}

func Forbidden(p ForbiddenProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		back := p.BackURL
		if back == "" {
			back = "/"
		}
		b.Raw(`<section class="mx-auto flex max-w-lg flex-col items-center gap-4 py-16 text-center" data-forbidden>`)
		b.Raw(`<div class="rounded-full bg-red-50 p-3 text-red-600">`).
			Component(ctx, icons.Warning(icons.Props{Size: "32"})).Raw(`</div>`)
		b.Raw(`<h1 class="text-2xl font-semibold text-gray-900">`).
			Text(intl.T(ctx, "Forbidden.Title", "Access denied")).Raw(`</h1>`)
		b.Raw(`<p class="text-sm text-gray-600">`).
			Text(intl.T(ctx, "Forbidden.Message", "You do not have permission to view this page.")).Raw(`</p>`)

		missing := p.MissingPermissions()
		if len(missing) > 0 {
			b.Raw(`<div class="w-full rounded-md border border-gray-200 bg-gray-50 p-4 text-left">`)
			b.Raw(`<p class="text-xs font-medium uppercase text-gray-500">`).
				Text(intl.T(ctx, "Forbidden.Missing", "Missing permissions")).Raw(`</p><ul class="mt-2 flex flex-col gap-1">`)
			for _, perm := range missing {
				b.Raw(`<li class="font-mono text-sm text-gray-800"`).Attr("data-permission", perm).Raw(`>`).Text(perm).Raw(`</li>`)
			}
			b.Raw(`</ul></div>`)
		}
		if strings.TrimSpace(p.RequestURL) != "" {
			b.Raw(`<p class="text-xs text-gray-400">`).Text(p.RequestURL).Raw(`</p>`)
		}
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Href:    back,
			Label:   intl.T(ctx, "Forbidden.Back", "Go back"),
		}))
		b.Raw(`</section>`)
	})
}
