package base

import (
	"context"
	"strings"
	"unicode"

	"github.com/a-h/templ"
)

type BadgeVariant string

const (
	BadgeGray   BadgeVariant = "gray"
	BadgeBlue   BadgeVariant = "blue"
	BadgeGreen  BadgeVariant = "green"
	BadgeYellow BadgeVariant = "yellow"
	BadgeRed    BadgeVariant = "red"
)

var badgeClasses = map[BadgeVariant]string{
	BadgeGray:   "bg-gray-100 text-gray-700",
	BadgeBlue:   "bg-blue-100 text-blue-700",
	BadgeGreen:  "bg-green-100 text-green-700",
	BadgeYellow: "bg-yellow-100 text-yellow-800",
	BadgeRed:    "bg-red-100 text-red-700",
}

func Badge(text string, variant BadgeVariant) templ.Component {
	class, ok := badgeClasses[variant]
	if !ok {
		class = badgeClasses[BadgeGray]
	}
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<span`).Attr("class", "inline-flex rounded-full px-2 py-0.5 text-xs font-medium "+class).Raw(`>`).Text(text).Raw(`</span>`)
	})
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		out = append(out, unicode.ToUpper(r[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func Avatar(name string) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<span class="inline-flex h-8 w-8 items-center justify-center rounded-full bg-brand-100 text-xs font-semibold text-brand-700"`).
			Attr("title", name).Raw(`>`).Text(Initials(name)).Raw(`</span>`)
	})
}

func Card(title string, body templ.Component) templ.Component {
	return Func(func(ctx context.Context, b *Writer) {
		b.Raw(`<section class="rounded-lg border border-gray-200 bg-white shadow-sm">`)
		if title != "" {
			b.Raw(`<header class="border-b border-gray-200 px-4 py-3"><h2 class="text-sm font-semibold text-gray-800">`).Text(title).Raw(`</h2></header>`)
		}
		b.Raw(`<div class="p-4">`).Component(ctx, body).Raw(`</div></section>`)
	})
}

// PageHeader renders the page title with optional actions on the right.
func PageHeader(title, subtitle string, actions templ.Component) templ.Component {
	return Func(func(ctx context.Context, b *Writer) {
		b.Raw(`<div class="mb-6 flex items-center justify-between gap-4"><div><h1 class="text-xl font-semibold text-gray-900">`).Text(title).Raw(`</h1>`)
		if subtitle != "" {
			b.Raw(`<p class="text-sm text-gray-500">`).Text(subtitle).Raw(`</p>`)
		}
		b.Raw(`</div><div class="flex items-center gap-2">`).Component(ctx, actions).Raw(`</div></div>`)
	})
}

// DefinitionList renders label/value pairs in order.
func DefinitionList(pairs ...[2]string) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<dl class="grid grid-cols-1 gap-3 sm:grid-cols-2">`)
		for _, p := range pairs {
			b.Raw(`<div><dt class="text-xs uppercase text-gray-500">`).Text(p[0]).Raw(`</dt><dd class="text-sm text-gray-900">`).Text(p[1]).Raw(`</dd></div>`)
		}
		b.Raw(`</dl>`)
	})
}
