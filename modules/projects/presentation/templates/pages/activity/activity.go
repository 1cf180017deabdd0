// Package activity renders the read-only activity feed of projects and tasks.
package activity

import (
	"context"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const FeedID = "activity-feed"

type FeedProps struct {
	Items []viewmodels.Activity
	// URL reloads the feed when RefreshOn fires.
	URL       string
	RefreshOn string
}

func actionLabel(ctx context.Context, action string) string {
	return intl.T(ctx, "Activity.Actions."+action, action)
}

func Feed(p FeedProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", FeedID)
		if p.URL != "" && p.RefreshOn != "" {
			b.Attr("hx-get", p.URL).Attr("hx-trigger", p.RefreshOn).Attr("hx-swap", "outerHTML")
		}
		b.Raw(`>`)
		if len(p.Items) == 0 {
			b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Activity.Empty", "Nothing happened yet.")).Raw(`</p></div>`)
			return
		}
		b.Raw(`<ol class="flex flex-col gap-3">`)
		for _, a := range p.Items {
			b.Raw(`<li class="flex gap-3 text-sm"`).Attr("data-action", a.Action).Raw(`>`)
			b.Raw(`<span class="mt-1.5 h-2 w-2 shrink-0 rounded-full bg-brand-400"></span>`)
			b.Raw(`<div><p class="text-gray-800"><span class="font-medium">`).Text(a.ActorName).Raw(`</span> `)
			b.Text(actionLabel(ctx, a.Action))
			if a.Subject != "" {
				b.Raw(` <span class="font-medium">`).Text(a.Subject).Raw(`</span>`)
			}
			b.Raw(`</p>`)
			if a.Message != "" {
				b.Raw(`<p class="text-gray-600">`).Text(a.Message).Raw(`</p>`)
			}
			b.Raw(`<time class="text-xs text-gray-400">`).Text(a.CreatedAt).Raw(`</time></div></li>`)
		}
		b.Raw(`</ol></div>`)
	})
}
