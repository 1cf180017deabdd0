package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/dashboard"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/middleware"
)

type DashboardController struct {
	app              application.Application
	dashboardService *services.DashboardService
}

func NewDashboardController(app application.Application) application.Controller {
	return &DashboardController{
		app:              app,
		dashboardService: app.Service(services.DashboardService{}).(*services.DashboardService),
	}
}

func (c *DashboardController) Key() string {
	return "/"
}

func (c *DashboardController) Register(r *mux.Router) {
	router := r.NewRoute().Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())
	router.HandleFunc("/", c.Get).Methods(http.MethodGet)
}

func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, _ := composables.UseUser(ctx)
	props := &dashboard.IndexPageProps{
		UserName: u.Name,
		Counters: c.dashboardService.Counters(ctx),
	}
	if htmx.IsHxRequest(r) && !htmx.IsBoosted(r) {
		templ.Handler(dashboard.Content(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(dashboard.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}
