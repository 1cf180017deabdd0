package layouts

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	authzcomponents "github.com/worktrack/worktrack/components/authorization"
	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/httpapi"
	"github.com/worktrack/worktrack/pkg/intl"
)

// WriteAuthzForbiddenResponse renders the access-denied page, or the bare
// panel swapped into the page body for htmx requests.
func WriteAuthzForbiddenResponse(w http.ResponseWriter, r *http.Request, permission string) {
	props := authzcomponents.ForbiddenProps{
		Permission: permission,
		State:      composables.UseAuthzViewState(r.Context()),
		RequestURL: r.URL.RequestURI(),
		BackURL:    r.Referer(),
	}
	if httpapi.WantsJSON(r) {
		_ = httpapi.WriteError(w, http.StatusForbidden, "FORBIDDEN",
			intl.T(r.Context(), "Forbidden.Title", "Access denied"),
			map[string]string{"missing": permission})
		return
	}
	if htmx.IsHxRequest(r) {
		htmx.Retarget(w, "#"+ContentID)
		htmx.Reswap(w, "innerHTML")
		templ.Handler(authzcomponents.Forbidden(props), templ.WithStatus(http.StatusForbidden)).ServeHTTP(w, r)
		return
	}
	title := intl.T(r.Context(), "Forbidden.Title", "Access denied")
	page := Page(r.Context(), title, authzcomponents.Forbidden(props))
	templ.Handler(page, templ.WithStatus(http.StatusForbidden), templ.WithStreaming()).ServeHTTP(w, r)
}

func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	if httpapi.WantsJSON(r) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", http.StatusText(http.StatusNotFound), nil)
		return
	}
	title := intl.T(r.Context(), "NotFound.Title", "Page not found")
	content := StatusPanel(http.StatusNotFound, title,
		intl.T(r.Context(), "NotFound.Message", "The page you are looking for does not exist."))
	templ.Handler(Page(r.Context(), title, content), templ.WithStatus(http.StatusNotFound), templ.WithStreaming()).ServeHTTP(w, r)
}

func WriteErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	title := intl.T(r.Context(), "Errors.Title", "Something went wrong")
	content := StatusPanel(status, title, message)
	templ.Handler(Page(r.Context(), title, content), templ.WithStatus(status), templ.WithStreaming()).ServeHTTP(w, r)
}

// StatusPanel is the centered status code, title and message block.
func StatusPanel(status int, title, message string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<section class="mx-auto flex max-w-lg flex-col items-center gap-3 py-16 text-center"`).
			Attr("data-status", strconv.Itoa(status)).Raw(`><div class="text-gray-400">`)
		b.Component(ctx, icons.Warning(icons.Props{Size: "32"}))
		b.Raw(`</div><p class="text-5xl font-bold text-gray-300">`).Text(strconv.Itoa(status)).Raw(`</p>`)
		b.Raw(`<h1 class="text-2xl font-semibold text-gray-900">`).Text(title).Raw(`</h1>`)
		if message != "" {
			b.Raw(`<p class="text-sm text-gray-600" data-message>`).Text(message).Raw(`</p>`)
		}
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Href:    "/",
			Label:   intl.T(ctx, "NotFound.Home", "Back to dashboard"),
		}))
		b.Raw(`</section>`)
	})
}
