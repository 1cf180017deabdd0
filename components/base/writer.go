// Package base holds the form controls and layout primitives every page is
// assembled from.
package base

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first error, so component
// bodies can emit markup without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped.
func (b *Writer) Raw(s string) *Writer {
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
	return b
}

// Text writes s HTML-escaped.
func (b *Writer) Text(s string) *Writer {
	return b.Raw(templ.EscapeString(s))
}

func (b *Writer) Textf(format string, args ...any) *Writer {
	return b.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with value escaped.
func (b *Writer) Attr(name, value string) *Writer {
	return b.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// AttrIf writes Attr only when value is not empty.
func (b *Writer) AttrIf(name, value string) *Writer {
	if value == "" {
		return b
	}
	return b.Attr(name, value)
}

// Flag writes a boolean attribute when on.
func (b *Writer) Flag(name string, on bool) *Writer {
	if on {
		return b.Raw(" " + name)
	}
	return b
}

// Attrs writes attributes in key order. true booleans render bare, false and
// nil values are skipped.
func (b *Writer) Attrs(attrs templ.Attributes) *Writer {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case nil:
		case bool:
			b.Flag(k, v)
		case string:
			b.Attr(k, v)
		default:
			b.Attr(k, fmt.Sprint(v))
		}
	}
	return b
}

// Component renders c in place. A nil component is a no-op.
func (b *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if b.err == nil && c != nil {
		b.err = c.Render(ctx, b.w)
	}
	return b
}

func (b *Writer) Err() error {
	return b.err
}

// Func adapts a Writer-based body to templ.Component.
func Func(fn func(ctx context.Context, b *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := NewWriter(w)
		fn(ctx, b)
		return b.Err()
	})
}

// Text renders escaped text as a component.
func Text(s string) templ.Component {
	return Func(func(_ context.Context, b *Writer) {
		b.Text(s)
	})
}

// Join renders components one after another.
func Join(cs ...templ.Component) templ.Component {
	return Func(func(ctx context.Context, b *Writer) {
		for _, c := range cs {
			b.Component(ctx, c)
		}
	})
}
