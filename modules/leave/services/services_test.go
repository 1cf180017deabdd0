package services_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/leave/services"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/itf"
	"github.com/worktrack/worktrack/pkg/session"
)

var bo = session.User{ID: 2, Name: "Bo Member", Email: "bo@example.com", RoleID: 2}

func signedIn(t *testing.T, u session.User, permissions ...string) context.Context {
	t.Helper()
	ctx := composables.WithConfig(context.Background(), &configuration.Configuration{
		Session: configuration.SessionOptions{Duration: time.Hour},
	})
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))
	return composables.WithSession(ctx, session.New("tok", u, permissions, time.Hour))
}

type recorder struct {
	mu     sync.Mutex
	events []any
}

func (r *recorder) all() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.events...)
}

type fixture struct {
	backend *itf.Backend
	events  *recorder
	leave   *services.LeaveService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := itf.NewBackend(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	bus := eventbus.NewEventPublisher(logger)
	rec := &recorder{}
	bus.Subscribe(func(e any) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.events = append(rec.events, e)
	})
	return &fixture{
		backend: b,
		events:  rec,
		leave:   services.NewLeaveService(persistence.NewLeaveRepository(b.Client()), bus),
	}
}
