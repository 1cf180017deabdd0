// Package filters renders the filter bar above list pages. Every control
// re-requests the list fragment and pushes the filtered URL.
package filters

import (
	"context"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/composables"
)

type Props struct {
	// ID is the form id list bodies include on refresh.
	ID     string
	URL    string
	Target string
	Fields []templ.Component
}

func (p Props) hx() templ.Attributes {
	return templ.Attributes{
		"hx-get":      p.URL,
		"hx-target":   p.Target,
		"hx-swap":     "outerHTML",
		"hx-push-url": "true",
		"hx-include":  "#" + p.ID,
	}
}

func Form(p Props) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<form class="mb-4 flex flex-wrap items-end gap-3"`).Attr("id", p.ID).
			Attr("hx-get", p.URL).Attr("hx-target", p.Target).Attr("hx-swap", "outerHTML").Attr("hx-push-url", "true").
			Attr("hx-trigger", "submit, change from:find select").Raw(`>`)
		for _, f := range p.Fields {
			b.Component(ctx, f)
		}
		b.Raw(`</form>`)
	})
}

// Search is the debounced text input of a filter form.
func Search(p Props, name, value, placeholder string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		attrs := p.hx()
		attrs["hx-trigger"] = composables.UseConfig(ctx).SearchDebounceTrigger()
		b.Raw(`<label class="flex min-w-64 items-center gap-2 rounded-md border border-gray-300 bg-white px-3 py-2 text-gray-500">`)
		b.Component(ctx, icons.MagnifyingGlass(icons.Props{Size: "16"}))
		b.Raw(`<input type="search" class="w-full border-0 p-0 text-sm focus:outline-none"`).
			Attr("name", name).Attr("value", value).AttrIf("placeholder", placeholder).Attrs(attrs).Raw(`></label>`)
	})
}

// Select is a filter dropdown; picking a value submits the form.
func Select(name, value, placeholder string, options []base.SelectOption) templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		b.Raw(`<select class="rounded-md border border-gray-300 bg-white px-3 py-2 text-sm"`).Attr("name", name).Raw(`>`)
		b.Raw(`<option value="">`).Text(placeholder).Raw(`</option>`)
		for _, o := range options {
			b.Raw(`<option`).Attr("value", o.Value).Flag("selected", o.Value == value).Raw(`>`).Text(o.Label).Raw(`</option>`)
		}
		b.Raw(`</select>`)
	})
}

// Date is a date input filter; picking a date re-requests the list.
func Date(p Props, name, value, label string) templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		attrs := p.hx()
		attrs["hx-trigger"] = "change"
		b.Raw(`<label class="flex flex-col gap-1 text-xs text-gray-500">`).Text(label).
			Raw(`<input type="date" class="rounded-md border border-gray-300 bg-white px-3 py-1.5 text-sm"`).
			Attr("name", name).Attr("value", value).Attrs(attrs).Raw(`></label>`)
	})
}
