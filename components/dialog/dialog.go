// Package dialog renders native <dialog> elements driven by htmx.
//
// Confirm wraps a single destructive action. FormDialog hosts create and edit
// forms; the server answers a valid submit with a closeDialog trigger and an
// invalid one with the same dialog re-rendered with errors.
package dialog

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
)

// CloseEvent is the HX-Trigger event that closes the open dialog.
const CloseEvent = htmx.EventCloseDialog

// RootID is the element dialogs fetched with hx-get are swapped into.
const RootID = "modal-root"

type ConfirmProps struct {
	ID           string
	Title        string
	Text         string
	ConfirmLabel string
	CancelLabel  string
	// Action is requested with Method (default DELETE) on confirm.
	Action string
	Method string
	Target string
	Swap   string
	// Trigger opens the dialog. A zero Trigger renders none.
	Trigger base.ButtonProps
}

func hxAttr(method string) string {
	switch strings.ToUpper(method) {
	case "POST":
		return "hx-post"
	case "PUT":
		return "hx-put"
	case "PATCH":
		return "hx-patch"
	case "GET":
		return "hx-get"
	default:
		return "hx-delete"
	}
}

func openScript(id string) string {
	return "document.getElementById('" + templ.EscapeString(id) + "').showModal()"
}

func Confirm(p ConfirmProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		confirmLabel := p.ConfirmLabel
		if confirmLabel == "" {
			confirmLabel = intl.T(ctx, "Dialog.Confirm", "Confirm")
		}
		cancelLabel := p.CancelLabel
		if cancelLabel == "" {
			cancelLabel = intl.T(ctx, "Dialog.Cancel", "Cancel")
		}
		if p.Trigger.Label != "" || p.Trigger.Icon != nil {
			trigger := p.Trigger
			trigger.Attrs = templ.Attributes{"onclick": openScript(p.ID)}
			for k, v := range p.Trigger.Attrs {
				trigger.Attrs[k] = v
			}
			b.Component(ctx, base.Button(trigger))
		}
		b.Raw(`<dialog class="w-full max-w-md rounded-lg p-0 shadow-xl backdrop:bg-black/40"`).Attr("id", p.ID).Raw(`>`)
		b.Raw(`<div class="p-6"><h3 class="text-lg font-semibold text-gray-900">`).Text(p.Title).Raw(`</h3>`)
		if p.Text != "" {
			b.Raw(`<p class="mt-2 text-sm text-gray-600">`).Text(p.Text).Raw(`</p>`)
		}
		b.Raw(`</div><div class="flex justify-end gap-2 border-t border-gray-100 px-6 py-3">`)
		b.Raw(`<form method="dialog">`).Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Type:    "submit",
			Label:   cancelLabel,
			Attrs:   templ.Attributes{"data-dialog-cancel": true},
		})).Raw(`</form>`)
		attrs := templ.Attributes{
			hxAttr(p.Method): p.Action,
			"hx-on::after-request": "this.closest('dialog').close()",
		}
		if p.Target != "" {
			attrs["hx-target"] = p.Target
		}
		if p.Swap != "" {
			attrs["hx-swap"] = p.Swap
		}
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonDanger,
			Label:   confirmLabel,
			Attrs:   attrs,
		}))
		b.Raw(`</div></dialog>`)
	})
}

type FormDialogProps struct {
	ID          string
	Title       string
	Action      string
	Method      string
	SubmitLabel string
	CancelLabel string
	// Multipart switches the form to multipart/form-data.
	Multipart bool
	Body      templ.Component
	// Error is a form-level message shown above the fields.
	Error string
}

// FormDialog renders an auto-opening dialog with a form. The form swaps the
// whole dialog so validation errors replace it in place.
func FormDialog(p FormDialogProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		submit := p.SubmitLabel
		if submit == "" {
			submit = intl.T(ctx, "Dialog.Save", "Save")
		}
		cancel := p.CancelLabel
		if cancel == "" {
			cancel = intl.T(ctx, "Dialog.Cancel", "Cancel")
		}
		b.Raw(`<dialog data-autoopen class="w-full max-w-lg rounded-lg p-0 shadow-xl backdrop:bg-black/40"`).Attr("id", p.ID).Raw(`>`)
		b.Raw(`<form class="flex flex-col"`).Attr(hxAttr(methodOr(p.Method, "POST")), p.Action).
			Attr("hx-target", "closest dialog").Attr("hx-swap", "outerHTML")
		if p.Multipart {
			b.Attr("hx-encoding", "multipart/form-data")
		}
		b.Raw(`><div class="border-b border-gray-100 px-6 py-4"><h3 class="text-lg font-semibold text-gray-900">`).Text(p.Title).Raw(`</h3></div>`)
		b.Raw(`<div class="flex flex-col gap-4 px-6 py-4">`)
		if p.Error != "" {
			b.Raw(`<div class="rounded bg-red-50 px-3 py-2 text-sm text-red-700" role="alert">`).Text(p.Error).Raw(`</div>`)
		}
		b.Component(ctx, p.Body)
		b.Raw(`</div><div class="flex justify-end gap-2 border-t border-gray-100 px-6 py-3">`)
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Label:   cancel,
			Attrs:   templ.Attributes{"onclick": "this.closest('dialog').close()", "data-dialog-cancel": true},
		}))
		b.Component(ctx, base.Button(base.ButtonProps{Type: "submit", Label: submit}))
		b.Raw(`</div></form></dialog>`)
	})
}

func methodOr(m, fallback string) string {
	if m == "" {
		return fallback
	}
	return m
}

// Root is the empty container FormDialogs are loaded into.
func Root() templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", RootID).Raw(`></div>`)
	})
}

// OpenButton loads a FormDialog from url into the dialog root.
func OpenButton(p base.ButtonProps, url string) templ.Component {
	attrs := templ.Attributes{
		"hx-get":    url,
		"hx-target": "#" + RootID,
		"hx-swap":   "innerHTML",
	}
	for k, v := range p.Attrs {
		attrs[k] = v
	}
	p.Attrs = attrs
	return base.Button(p)
}
