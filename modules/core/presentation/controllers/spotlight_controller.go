package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/spotlight"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/httpapi"
	"github.com/worktrack/worktrack/pkg/middleware"
)

type SpotlightController struct {
	app application.Application
}

func NewSpotlightController(app application.Application) application.Controller {
	return &SpotlightController{app: app}
}

func (c *SpotlightController) Key() string {
	return layouts.SpotlightURL
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix(layouts.SpotlightURL).Subrouter()
	router.Use(middleware.RedirectNotAuthenticated())
	router.HandleFunc("", c.Search).Methods(http.MethodGet)
}

type spotlightHit struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

func (c *SpotlightController) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	links := c.app.QuickLinks().Find(ctx, q)

	if httpapi.WantsJSON(r) {
		hits := make([]spotlightHit, 0, len(links))
		for _, l := range links {
			hits = append(hits, spotlightHit{Label: l.Label(ctx), Href: l.Href()})
		}
		_ = httpapi.WriteData(w, hits)
		return
	}
	templ.Handler(spotlight.Results(q, links)).ServeHTTP(w, r)
}
