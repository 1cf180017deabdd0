package spotlight

import (
	"context"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/intl"
	pkgspotlight "github.com/worktrack/worktrack/pkg/spotlight"
)

// Results is the dropdown under the top bar search.
func Results(query string, links []*pkgspotlight.QuickLink) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if query == "" {
			return
		}
		b.Raw(`<div class="max-h-80 overflow-y-auto rounded-md border border-gray-200 bg-white py-1 shadow-lg" role="listbox">`)
		if len(links) == 0 {
			b.Raw(`<p class="px-3 py-2 text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Spotlight.NoResults", "No matches")).Raw(`</p>`)
		}
		for _, l := range links {
			b.Component(ctx, l)
		}
		b.Raw(`</div>`)
	})
}
