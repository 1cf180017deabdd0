package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/worktrack/worktrack/modules/core/presentation/controllers"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/middleware"
	"github.com/worktrack/worktrack/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func rateLimitStore(logger *logrus.Logger, cfg *configuration.Configuration) limiter.Store {
	if cfg.RateLimit.Storage != "redis" {
		return middleware.NewMemoryStore()
	}
	store, err := middleware.NewRedisStore(cfg.RateLimit.RedisURL)
	if err != nil {
		logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
		return middleware.NewMemoryStore()
	}
	return store
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	cfg := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.LoggerOptions{
			LogRequestBody:  true,
			RequestIDHeader: cfg.RequestIDHeader,
			RealIPHeader:    cfg.RealIPHeader,
		}),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.ConfigKey, cfg),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(cfg.CORS.AllowedOrigins...),
	}

	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: cfg.RateLimit.GlobalRPS,
				Store:             rateLimitStore(options.Logger, cfg),
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("session"),
		middleware.Authorize(app.Sessions(), cfg.Session.CookieKey),
		middleware.ProvideAPIToken(),
		middleware.ProvideLocalizer(app),
		middleware.RequestParams(cfg.RealIPHeader),
		middleware.Toasts(),
		middleware.NavItems(),
		middleware.WithPageContext(),
	)

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(
		app,
		controllers.NotFound(),
		controllers.MethodNotAllowed(),
	), nil
}
