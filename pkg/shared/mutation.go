package shared

import (
	"net/http"

	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/toast"
)

// Done answers a successful mutation. htmx callers get the changed event that
// refreshes the list, a dialog close and a success toast, with nothing
// swapped. Plain form posts are redirected to back with a flash toast.
func Done(w http.ResponseWriter, r *http.Request, event, message, back string) {
	toast.PushSuccess(w, r, message)
	if !htmx.IsHxRequest(r) {
		if back == "" {
			back = "/"
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if event != "" {
		htmx.SetTrigger(w, event, nil)
	}
	htmx.SetTrigger(w, htmx.EventCloseDialog, nil)
	htmx.Reswap(w, "none")
	w.WriteHeader(http.StatusOK)
}
