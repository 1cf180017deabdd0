// Package layouts holds the page shells every full page render goes through.
package layouts

import (
	"context"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/toast"
	"github.com/worktrack/worktrack/internal/assets"
	"github.com/worktrack/worktrack/pkg/intl"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

type BaseProps struct {
	Title string
	// BodyClass overrides the default body classes.
	BodyClass string
}

func lang(ctx context.Context) string {
	if tag, ok := intl.UseLocale(ctx); ok {
		if b, _ := tag.Base(); b.String() != "" {
			return b.String()
		}
	}
	return "en"
}

// Base renders the document with stylesheet, scripts, the toast container and
// the dialog root around body.
func Base(p BaseProps, body templ.Component) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "App.Name", "Worktrack")
		if p.Title != "" {
			title = p.Title + " · " + title
		}
		bodyClass := p.BodyClass
		if bodyClass == "" {
			bodyClass = "min-h-screen bg-gray-50 text-gray-900 antialiased"
		}
		b.Raw(`<!DOCTYPE html><html`).Attr("lang", lang(ctx)).Raw(`><head><meta charset="utf-8">`)
		b.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.Raw(`<title>`).Text(title).Raw(`</title>`)
		b.Raw(`<link rel="stylesheet"`).Attr("href", assets.Path("css/main.css")).Raw(`>`)
		b.Raw(`<script`).Attr("src", htmxSrc).Raw(`></script>`)
		b.Raw(`<script defer`).Attr("src", assets.Path("js/app.js")).Raw(`></script>`)
		b.Raw(`</head><body`).Attr("class", bodyClass).Raw(`>`)
		b.Component(ctx, body)
		b.Component(ctx, toast.Container())
		b.Component(ctx, dialog.Root())
		b.Raw(`</body></html>`)
	})
}
