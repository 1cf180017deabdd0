package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/account"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/session"
	"github.com/worktrack/worktrack/pkg/shared"
	"github.com/worktrack/worktrack/pkg/toast"
)

const languageCookieMaxAge = 365 * 24 * 60 * 60

type AccountController struct {
	app         application.Application
	basePath    string
	authService *services.AuthService
}

func NewAccountController(app application.Application) application.Controller {
	return &AccountController{
		app:         app,
		basePath:    "/account",
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *AccountController) Key() string {
	return c.basePath
}

func (c *AccountController) Register(r *mux.Router) {
	// The language switch also works on the login page.
	r.HandleFunc(c.basePath+"/language", c.SetLanguage).Methods(http.MethodPost)

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/refresh", c.Refresh).Methods(http.MethodPost)
}

func profileProps(sess *session.Session) *account.IndexPageProps {
	return &account.IndexPageProps{
		User:        sess.User,
		Permissions: sess.Permissions,
		ExpiresAt:   sess.ExpiresAt.Local().Format("2006-01-02 15:04"),
	}
}

func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	templ.Handler(account.Index(profileProps(sess)), templ.WithStreaming()).ServeHTTP(w, r)
}

// Refresh reloads the user and permissions from the backend.
func (c *AccountController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := composables.UseSession(ctx)
	if err != nil {
		shared.HandleError(w, r, err)
		return
	}
	updated, err := c.authService.Refresh(ctx, sess)
	if err != nil {
		shared.HandleError(w, r, errors.Wrap(err, "refresh session"))
		return
	}
	toast.PushSuccess(w, r, intl.T(ctx, "Account.Messages.Refreshed", "Permissions reloaded"))
	if !htmx.IsHxRequest(r) {
		http.Redirect(w, r, c.basePath, http.StatusSeeOther)
		return
	}
	ctx = composables.WithSession(ctx, updated)
	templ.Handler(account.Profile(profileProps(updated)), templ.WithStreaming()).ServeHTTP(w, r.WithContext(ctx))
}

func (c *AccountController) SetLanguage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.LanguageDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := dto.Ok(ctx); !ok {
		shared.Reject(w, r, http.StatusUnprocessableEntity, errs["Language"])
		return
	}
	lang := user.UILanguage(dto.Language)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.LocaleCookie,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		Expires:  time.Now().Add(languageCookieMaxAge * time.Second),
		SameSite: http.SameSiteLaxMode,
	})

	if sess, err := composables.UseSession(ctx); err == nil {
		updated := *sess
		updated.User.Language = string(lang)
		if err := c.app.Sessions().Save(ctx, &updated); err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to store session language")
		}
	}

	shared.Redirect(w, r, refererPath(r))
}

// refererPath keeps the user on the page they switched language from,
// without ever leaving this host.
func refererPath(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
