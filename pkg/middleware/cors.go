package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/worktrack/worktrack/pkg/htmx"
)

func Cors(allowedOrigins ...string) mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Authorization",
			htmx.HeaderRequest, htmx.HeaderTarget, htmx.HeaderCurrentURL,
			"HX-Trigger", "HX-Trigger-Name",
		},
		ExposedHeaders: []string{
			htmx.HeaderTrigger, htmx.HeaderRedirect, htmx.HeaderRetarget,
			htmx.HeaderReswap, htmx.HeaderPushURL,
		},
		AllowCredentials: true,
	})
	return c.Handler
}
