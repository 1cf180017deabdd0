package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/worktrack/worktrack/internal/server"
	"github.com/worktrack/worktrack/modules"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/defaults"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/logging"
	"github.com/worktrack/worktrack/pkg/session"
)

const shutdownTimeout = 10 * time.Second

func sessionStore(conf *configuration.Configuration, logger *logrus.Logger) session.Store {
	if conf.Session.Store != "redis" {
		return session.NewMemoryStore()
	}
	store, err := session.NewRedisStoreFromURL(conf.Session.RedisURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect the session store")
	}
	return store
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	api, err := apiclient.New(apiclient.Options{
		BaseURL:         conf.Backend.BaseURL,
		Timeout:         conf.Backend.Timeout,
		MaxIdleConns:    conf.Backend.MaxIdleConns,
		RequestIDHeader: conf.RequestIDHeader,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	app := application.New(&application.ApplicationOptions{
		API:      api,
		Sessions: sessionStore(conf, logger),
		EventBus: eventbus.NewEventPublisher(logger),
		Bundle:   application.LoadBundle(),
	})
	if err := modules.Load(app); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if err := defaults.ApplyPermissionSchema(app, conf, logger); err != nil {
		log.Fatalf("failed to apply permission schema: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Listening on: %s\n", conf.Origin)
		if err := serverInstance.Start(conf.SocketAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return serverInstance.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
