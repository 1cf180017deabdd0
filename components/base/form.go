package base

import (
	"context"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const controlClass = "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-brand-500 focus:outline-none"

func controlClassFor(errText, class string) string {
	if errText != "" {
		return twmerge.Merge(controlClass, "border-red-500", class)
	}
	return twmerge.Merge(controlClass, class)
}

// Field wraps a control with its label and error text.
func Field(id, label, errText string, required bool, control templ.Component) templ.Component {
	return Func(func(ctx context.Context, b *Writer) {
		b.Raw(`<div class="flex flex-col gap-1">`)
		if label != "" {
			b.Raw(`<label class="text-sm font-medium text-gray-700"`).Attr("for", id).Raw(`>`).Text(label)
			if required {
				b.Raw(`<span class="text-red-500"> *</span>`)
			}
			b.Raw(`</label>`)
		}
		b.Component(ctx, control)
		if errText != "" {
			b.Raw(`<p class="text-xs text-red-600" role="alert">`).Text(errText).Raw(`</p>`)
		}
		b.Raw(`</div>`)
	})
}

type InputProps struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Error       string
	Class       string
	Attrs       templ.Attributes
}

func Input(p InputProps) templ.Component {
	typ := p.Type
	if typ == "" {
		typ = "text"
	}
	id := "field-" + p.Name
	control := Func(func(_ context.Context, b *Writer) {
		b.Raw(`<input`).Attr("id", id).Attr("type", typ).Attr("name", p.Name).
			Attr("class", controlClassFor(p.Error, p.Class)).
			AttrIf("placeholder", p.Placeholder).Flag("required", p.Required).Attrs(p.Attrs)
		if typ != "password" {
			b.Attr("value", p.Value)
		}
		b.Raw(`>`)
	})
	return Field(id, p.Label, p.Error, p.Required, control)
}

type SelectOption struct {
	Value string
	Label string
}

type SelectProps struct {
	Name        string
	Label       string
	Options     []SelectOption
	Selected    string
	Placeholder string
	Required    bool
	Error       string
	Attrs       templ.Attributes
}

func Select(p SelectProps) templ.Component {
	id := "field-" + p.Name
	control := Func(func(_ context.Context, b *Writer) {
		b.Raw(`<select`).Attr("id", id).Attr("name", p.Name).
			Attr("class", controlClassFor(p.Error, "")).Flag("required", p.Required).Attrs(p.Attrs).Raw(`>`)
		if p.Placeholder != "" {
			b.Raw(`<option value="">`).Text(p.Placeholder).Raw(`</option>`)
		}
		for _, o := range p.Options {
			b.Raw(`<option`).Attr("value", o.Value).Flag("selected", o.Value == p.Selected).Raw(`>`).Text(o.Label).Raw(`</option>`)
		}
		b.Raw(`</select>`)
	})
	return Field(id, p.Label, p.Error, p.Required, control)
}

type TextareaProps struct {
	Name     string
	Label    string
	Value    string
	Rows     int
	Required bool
	Error    string
	Attrs    templ.Attributes
}

func Textarea(p TextareaProps) templ.Component {
	rows := p.Rows
	if rows <= 0 {
		rows = 4
	}
	id := "field-" + p.Name
	control := Func(func(_ context.Context, b *Writer) {
		b.Raw(`<textarea`).Attr("id", id).Attr("name", p.Name).Attr("rows", strconv.Itoa(rows)).
			Attr("class", controlClassFor(p.Error, "")).Flag("required", p.Required).Attrs(p.Attrs).Raw(`>`).
			Text(p.Value).Raw(`</textarea>`)
	})
	return Field(id, p.Label, p.Error, p.Required, control)
}

func Checkbox(name, label string, checked bool) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<label class="inline-flex items-center gap-2 text-sm"><input type="checkbox" class="rounded border-gray-300"`).
			Attr("name", name).Flag("checked", checked).Raw(`><span>`).Text(label).Raw(`</span></label>`)
	})
}

// Hidden renders a hidden input.
func Hidden(name, value string) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<input type="hidden"`).Attr("name", name).Attr("value", value).Raw(`>`)
	})
}

// CheckboxValue is a checkbox that submits value instead of "on".
func CheckboxValue(name, value, label string, checked bool) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Raw(`<label class="inline-flex items-center gap-2 text-sm"><input type="checkbox" class="rounded border-gray-300"`).
			Attr("name", name).Attr("value", value).Flag("checked", checked).Raw(`><span>`).Text(label).Raw(`</span></label>`)
	})
}
