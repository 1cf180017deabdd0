package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/toast"
)

func Provide(k constants.ContextKey, v any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), k, v)))
		})
	}
}

// RequestParams records the caller's address, preferring realIPHeader when
// the app runs behind a proxy.
func RequestParams(realIPHeader string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:        headerOr(r, realIPHeader, r.RemoteAddr),
				UserAgent: r.UserAgent(),
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}

// Toasts moves flash toasts left by a redirect into the context of the next
// full page render.
func Toasts() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || htmx.IsHxRequest(r) {
				next.ServeHTTP(w, r)
				return
			}
			toasts := toast.Pop(w, r)
			if len(toasts) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithFlashToasts(r.Context(), toasts)))
		})
	}
}
