package toast

import (
	"context"

	"github.com/a-h/templ"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/composables"
	pkgtoast "github.com/worktrack/worktrack/pkg/toast"
)

const ContainerID = "toasts"

var kindClasses = map[pkgtoast.Kind]string{
	pkgtoast.Success: "border-green-200 bg-green-50 text-green-800",
	pkgtoast.Error:   "border-red-200 bg-red-50 text-red-800",
	pkgtoast.Info:    "border-blue-200 bg-blue-50 text-blue-800",
}

// Item renders one toast. The client script clones this markup for toasts
// delivered through the showToast event.
func Item(t pkgtoast.Toast) templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		class, ok := kindClasses[t.Kind]
		if !ok {
			class = kindClasses[pkgtoast.Info]
		}
		role := "status"
		if t.Kind == pkgtoast.Error {
			role = "alert"
		}
		b.Raw(`<div`).
			Attr("class", "toast pointer-events-auto rounded-md border px-4 py-3 text-sm shadow "+class).
			Attr("role", role).Attr("data-toast-id", t.ID).Attr("data-kind", string(t.Kind)).Raw(`>`).
			Text(t.Message).Raw(`</div>`)
	})
}

// Container holds the flash toasts of this render and receives the ones
// pushed later through HX-Trigger.
func Container() templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="pointer-events-none fixed right-4 top-4 z-50 flex w-80 flex-col gap-2" aria-live="polite"`).
			Attr("id", ContainerID).Attr("data-toast-event", pkgtoast.Event).Raw(`>`)
		for _, t := range composables.UseFlashToasts(ctx) {
			b.Component(ctx, Item(t))
		}
		b.Raw(`</div>`)
	})
}
