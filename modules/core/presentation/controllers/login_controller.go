package controllers

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/modules/core/presentation/controllers/dtos"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/login"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/shared"
	"github.com/worktrack/worktrack/pkg/toast"
)

// LoginAttemptsPerMinute caps password posts per client address.
const LoginAttemptsPerMinute = 10

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type LoginController struct {
	app         application.Application
	authService *services.AuthService
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	r.HandleFunc("/login", c.Get).Methods(http.MethodGet)
	r.HandleFunc(shared.LogoutPath, c.Logout).Methods(http.MethodGet, http.MethodPost)

	setRouter := r.PathPrefix("/login").Subrouter()
	setRouter.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerPeriod: LoginAttemptsPerMinute,
		Period:            time.Minute,
		Store:             middleware.NewMemoryStore(),
	}))
	setRouter.HandleFunc("", c.Post).Methods(http.MethodPost)
}

func (c *LoginController) render(w http.ResponseWriter, r *http.Request, status int, props *login.LoginProps) {
	templ.Handler(login.Index(props), templ.WithStatus(status), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *LoginController) Get(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if _, err := composables.UseSession(r.Context()); err == nil {
		http.Redirect(w, r, shared.SafeNext(next), http.StatusFound)
		return
	}
	c.render(w, r, http.StatusOK, &login.LoginProps{
		Email:  r.URL.Query().Get("email"),
		Next:   next,
		Errors: map[string]string{},
	})
}

func (c *LoginController) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	props := &login.LoginProps{Email: dto.Email, Next: dto.Next, Errors: map[string]string{}}
	if errs, ok := dto.Ok(ctx); !ok {
		props.Email = dto.Email
		props.Errors = errs
		c.render(w, r, http.StatusUnprocessableEntity, props)
		return
	}

	sess, err := c.authService.Authenticate(ctx, dto.Email, dto.Password)
	if err != nil {
		status := http.StatusBadGateway
		props.Error = shared.ErrorMessage(r, err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			status = http.StatusUnprocessableEntity
			props.Error = intl.T(ctx, "Login.Errors.InvalidCredentials", "Email or password is incorrect.")
		}
		entry := composables.UseLogger(ctx).WithError(err).WithField("email", dto.Email)
		if ip, ok := composables.UseIP(ctx); ok {
			entry = entry.WithField("client-ip", ip)
		}
		if ua, ok := composables.UseUserAgent(ctx); ok {
			entry = entry.WithField("client-agent", ua)
		}
		entry.Info("login failed")
		c.render(w, r, status, props)
		return
	}

	conf := composables.UseConfig(ctx)
	http.SetCookie(w, &http.Cookie{
		Name:     conf.Session.CookieKey,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.Session.CookieSecure,
	})
	toast.PushSuccess(w, r, intl.T(ctx, "Login.Welcome", "Welcome back, "+sess.User.Name, map[string]interface{}{"Name": sess.User.Name}))
	http.Redirect(w, r, shared.SafeNext(dto.Next), http.StatusFound)
}

func (c *LoginController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sess, err := composables.UseSession(ctx); err == nil {
		if err := c.authService.Logout(ctx, sess); err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     composables.UseConfig(ctx).Session.CookieKey,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(1, 0),
		HttpOnly: true,
	})
	shared.Redirect(w, r, middleware.LoginURL(shared.SafeNext(r.URL.Query().Get("next"))))
}
