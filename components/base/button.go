package base

import (
	"context"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
	ButtonGhost     ButtonVariant = "ghost"
)

const buttonBase = "inline-flex items-center justify-center gap-2 rounded-md px-4 py-2 text-sm font-medium transition-colors disabled:opacity-50 disabled:pointer-events-none"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-brand-600 text-white hover:bg-brand-700",
	ButtonSecondary: "bg-white text-gray-800 border border-gray-300 hover:bg-gray-50",
	ButtonDanger:    "bg-red-600 text-white hover:bg-red-700",
	ButtonGhost:     "bg-transparent text-gray-700 hover:bg-gray-100",
}

type ButtonProps struct {
	Variant ButtonVariant
	// Type defaults to "button".
	Type  string
	Label string
	Icon  templ.Component
	// Href renders an anchor instead of a button.
	Href     string
	Class    string
	Disabled bool
	Attrs    templ.Attributes
}

// ButtonClass merges the variant classes with overrides; later classes win.
func ButtonClass(variant ButtonVariant, class string) string {
	v, ok := buttonVariants[variant]
	if !ok {
		v = buttonVariants[ButtonPrimary]
	}
	return twmerge.Merge(buttonBase, v, class)
}

func Button(p ButtonProps) templ.Component {
	return Func(func(ctx context.Context, b *Writer) {
		class := ButtonClass(p.Variant, p.Class)
		if p.Href != "" {
			b.Raw(`<a`).Attr("href", p.Href).Attr("class", class).Attrs(p.Attrs).Raw(`>`)
		} else {
			typ := p.Type
			if typ == "" {
				typ = "button"
			}
			b.Raw(`<button`).Attr("type", typ).Attr("class", class).Flag("disabled", p.Disabled).Attrs(p.Attrs).Raw(`>`)
		}
		b.Component(ctx, p.Icon)
		if p.Label != "" {
			b.Raw(`<span>`).Text(p.Label).Raw(`</span>`)
		}
		if p.Href != "" {
			b.Raw(`</a>`)
		} else {
			b.Raw(`</button>`)
		}
	})
}
