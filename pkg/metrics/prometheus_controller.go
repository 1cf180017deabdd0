package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worktrack/worktrack/pkg/application"
)

type PrometheusController struct {
	path     string
	gatherer prometheus.Gatherer
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = "/debug/prometheus"
	}
	return &PrometheusController{path: path, gatherer: prometheus.DefaultGatherer}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}
