package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/types"
)

// NavItems stores the translated navigation, filtered by the user's
// permissions, for the layout to render.
func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				app, err := application.UseApp(r.Context())
				if err != nil {
					panic(err.Error())
				}
				if _, err := composables.UseSession(r.Context()); err != nil {
					next.ServeHTTP(w, r)
					return
				}
				localizer, _ := intl.UseLocalizer(r.Context())
				ctx := r.Context()
				items := types.Filter(app.NavItems(localizer), func(permission string) bool {
					return composables.CanUser(ctx, permission)
				})
				next.ServeHTTP(w, r.WithContext(composables.WithNavItems(ctx, items)))
			},
		)
	}
}
