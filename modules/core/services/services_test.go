package services_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
)

func signedIn(t *testing.T, u session.User, permissions ...string) context.Context {
	t.Helper()
	ctx := composables.WithConfig(context.Background(), &configuration.Configuration{
		Session: configuration.SessionOptions{Duration: time.Hour},
	})
	return composables.WithSession(ctx, session.New("tok", u, permissions, time.Hour))
}

// recorder collects every event published on the bus.
type recorder struct {
	mu     sync.Mutex
	events []any
}

func newBus(t *testing.T) (eventbus.EventBus, *recorder) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	bus := eventbus.NewEventPublisher(logger)
	rec := &recorder{}
	bus.Subscribe(func(e any) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.events = append(rec.events, e)
	})
	return bus, rec
}

func (r *recorder) all() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.events...)
}
