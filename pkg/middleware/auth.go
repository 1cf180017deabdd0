package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/session"
)

const LoginPath = "/login"

// Authorize loads the session named by the sid cookie. Unknown or expired
// sessions clear the cookie and the request continues anonymously.
func Authorize(store session.Store, cookieKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				c, err := r.Cookie(cookieKey)
				if err != nil || c.Value == "" {
					next.ServeHTTP(w, r)
					return
				}
				s, err := store.Get(r.Context(), c.Value)
				if err != nil {
					if !errors.Is(err, session.ErrNotFound) {
						composables.UseLogger(r.Context()).WithError(err).Warn("failed to load session")
					}
					http.SetCookie(w, &http.Cookie{
						Name:     cookieKey,
						Value:    "",
						Path:     "/",
						MaxAge:   -1,
						Expires:  time.Unix(1, 0),
						HttpOnly: true,
					})
					next.ServeHTTP(w, r)
					return
				}
				state := authz.NewViewState(strconv.FormatInt(s.User.ID, 10), s.Permissions)
				ctx := composables.WithSession(r.Context(), s)
				ctx = composables.WithAuthzViewState(ctx, state)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// ProvideAPIToken forwards the session's bearer token to backend calls made
// while serving the request.
func ProvideAPIToken() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if s, err := composables.UseSession(r.Context()); err == nil {
					r = r.WithContext(apiclient.WithToken(r.Context(), s.Token))
				}
				next.ServeHTTP(w, r)
			},
		)
	}
}

// LoginURL returns the login page that comes back to next after sign-in.
func LoginURL(next string) string {
	if next == "" || next == "/" || next == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// RedirectNotAuthenticated sends anonymous requests to the login page.
func RedirectNotAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if _, err := composables.UseSession(r.Context()); err == nil {
					next.ServeHTTP(w, r)
					return
				}
				if htmx.IsHxRequest(r) {
					back := r.URL.RequestURI()
					if cur := htmx.CurrentURL(r); cur != "" {
						if u, err := url.Parse(cur); err == nil {
							back = u.RequestURI()
						}
					}
					htmx.Redirect(w, LoginURL(back))
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
			},
		)
	}
}
