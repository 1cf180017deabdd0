// Package table renders list pages: a header, swappable rows, and the
// loading and empty states.
package table

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/intl"
)

type Column struct {
	Key   string
	Label string
	Class string
}

type Row struct {
	ID    string
	Cells []templ.Component
	Attrs templ.Attributes
}

type Props struct {
	// ID prefixes the element ids: "<ID>-body" and "<ID>-loading".
	ID      string
	Columns []Column
	Rows    []Row
	// EmptyText overrides the localized empty message.
	EmptyText string
	// RowsURL and RefreshOn make the body re-fetch itself on an event,
	// e.g. "projectsChanged from:body".
	RowsURL   string
	RefreshOn string
	// Include names the filter form whose values ride along on refresh.
	Include string
}

func (p Props) BodyID() string {
	return p.ID + "-body"
}

func (p Props) LoadingID() string {
	return p.ID + "-loading"
}

func Table(p Props) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="relative overflow-x-auto rounded-lg border border-gray-200 bg-white">`)
		b.Component(ctx, Loading(p))
		b.Raw(`<table class="min-w-full divide-y divide-gray-200 text-sm"`).Attr("id", p.ID).Raw(`><thead class="bg-gray-50"><tr>`)
		for _, c := range p.Columns {
			b.Raw(`<th scope="col" class="px-4 py-2 text-left font-medium text-gray-600"`).AttrIf("data-key", c.Key).Raw(`>`).Text(c.Label).Raw(`</th>`)
		}
		b.Raw(`</tr></thead><tbody class="divide-y divide-gray-100"`).Attr("id", p.BodyID())
		if p.RowsURL != "" {
			b.Attr("hx-get", p.RowsURL).Attr("hx-swap", "innerHTML").Attr("hx-indicator", "#"+p.LoadingID())
			if p.RefreshOn != "" {
				b.Attr("hx-trigger", p.RefreshOn)
			}
			b.AttrIf("hx-include", p.Include)
		}
		b.Raw(`>`)
		b.Component(ctx, Rows(p))
		b.Raw(`</tbody></table></div>`)
	})
}

// Rows renders only the body rows, for htmx swaps into "<ID>-body".
func Rows(p Props) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if len(p.Rows) == 0 {
			b.Component(ctx, Empty(len(p.Columns), p.EmptyText))
			return
		}
		for _, row := range p.Rows {
			b.Raw(`<tr class="hover:bg-gray-50"`).AttrIf("id", row.ID).Attrs(row.Attrs).Raw(`>`)
			for i, cell := range row.Cells {
				class := "px-4 py-2 text-gray-800"
				if i < len(p.Columns) && p.Columns[i].Class != "" {
					class = p.Columns[i].Class
				}
				b.Raw(`<td`).Attr("class", class).Raw(`>`).Component(ctx, cell).Raw(`</td>`)
			}
			b.Raw(`</tr>`)
		}
	})
}

// Empty renders a single full-width row with the empty message.
func Empty(colspan int, text string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if text == "" {
			text = intl.T(ctx, "Table.Empty", "Nothing here yet.")
		}
		if colspan < 1 {
			colspan = 1
		}
		b.Raw(`<tr data-empty><td class="px-4 py-10 text-center text-gray-500"`).Attr("colspan", strconv.Itoa(colspan)).Raw(`>`).Text(text).Raw(`</td></tr>`)
	})
}

// Loading is the skeleton overlay shown while the body re-fetches.
func Loading(p Props) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="htmx-indicator absolute inset-0 z-10 flex flex-col gap-2 bg-white/70 p-4"`).Attr("id", p.LoadingID()).
			Attr("aria-label", intl.T(ctx, "Table.Loading", "Loading")).Raw(`>`)
		for i := 0; i < 3; i++ {
			b.Raw(`<div class="h-4 animate-pulse rounded bg-gray-200"></div>`)
		}
		b.Raw(`</div>`)
	})
}

// TextCell is the common plain-text cell.
func TextCell(s string) templ.Component {
	return base.Text(s)
}

// LinkCell renders text linking to href.
func LinkCell(text, href string) templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		b.Raw(`<a class="text-brand-700 hover:underline"`).Attr("href", href).Raw(`>`).Text(text).Raw(`</a>`)
	})
}
