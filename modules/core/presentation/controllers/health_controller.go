package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/httpapi"
)

type HealthController struct {
	started time.Time
}

func NewHealthController() application.Controller {
	return &HealthController{started: time.Now()}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet, http.MethodHead)
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(c.started).Round(time.Second).String(),
	})
}
