package dashboard

import (
	"context"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/intl"
)

type IndexPageProps struct {
	UserName string
	Counters []services.CounterValue
}

func tile(c services.CounterValue) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		tag, closeTag := `<div`, `</div>`
		if c.Href != "" {
			tag, closeTag = `<a`, `</a>`
		}
		b.Raw(tag).Attr("class", "flex items-center gap-4 rounded-lg border border-gray-200 bg-white p-5 shadow-sm hover:border-brand-300").
			Attr("data-counter", c.Key).AttrIf("href", c.Href).Raw(`>`)
		b.Raw(`<div class="rounded-full bg-brand-50 p-3 text-brand-700">`).Component(ctx, c.Icon).Raw(`</div>`)
		b.Raw(`<div><p class="text-sm text-gray-500">`).Text(intl.T(ctx, c.Label, c.Label)).Raw(`</p>`)
		valueClass := "text-2xl font-semibold text-gray-900"
		if c.Failed {
			valueClass = "text-2xl font-semibold text-gray-400"
		}
		b.Raw(`<p data-value`).Attr("class", valueClass).Raw(`>`).Text(c.Value).Raw(`</p></div>`)
		b.Raw(closeTag)
	})
}

func Content(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, base.PageHeader(
			intl.T(ctx, "Dashboard.Title", "Dashboard"),
			intl.T(ctx, "Dashboard.Welcome", "Welcome back, "+p.UserName, map[string]interface{}{"Name": p.UserName}),
			nil,
		))
		if len(p.Counters) == 0 {
			b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Dashboard.Empty", "Nothing to show for your role yet.")).Raw(`</p>`)
			return
		}
		b.Raw(`<div class="grid grid-cols-1 gap-4 sm:grid-cols-2 xl:grid-cols-4">`)
		for _, c := range p.Counters {
			b.Component(ctx, tile(c))
		}
		b.Raw(`</div>`)
	})
}

func Index(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{
			BaseProps: layouts.BaseProps{Title: intl.T(ctx, "Dashboard.Title", "Dashboard")},
		}, Content(p)))
	})
}
