package controllers

import (
	"net/http"
	"strings"

	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/pkg/httpapi"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/shared"
)

func isAPIPath(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || httpapi.WantsJSON(r)
}

// UseErrorResponders routes the shared error responses through the core
// templates.
func UseErrorResponders() {
	shared.NotFoundResponder = layouts.WriteNotFound
	shared.ForbiddenResponder = layouts.WriteAuthzForbiddenResponse
	shared.ErrorPageResponder = layouts.WriteErrorPage
}

func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAPIPath(r) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", map[string]string{"path": r.URL.Path})
			return
		}
		layouts.WriteNotFound(w, r)
	}
}

func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAPIPath(r) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", map[string]string{
				"path":   r.URL.Path,
				"method": r.Method,
			})
			return
		}
		layouts.WriteErrorPage(w, r, http.StatusMethodNotAllowed,
			intl.T(r.Context(), "Errors.MethodNotAllowed", "This action is not supported here."))
	}
}
