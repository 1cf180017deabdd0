package services

import (
	"context"
	"sync"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/worktrack/worktrack/pkg/composables"
)

// Unavailable is shown in place of a counter whose fetch failed.
const Unavailable = "—"

// Counter is one dashboard tile. Modules register theirs at startup.
type Counter struct {
	Key        string
	Label      string
	Permission string
	Href       string
	Icon       templ.Component
	Fetch      func(ctx context.Context) (string, error)
}

type CounterValue struct {
	Counter
	Value  string
	Failed bool
}

type DashboardService struct {
	mu       sync.RWMutex
	counters []Counter
}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

func (s *DashboardService) Register(counters ...Counter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = append(s.counters, counters...)
}

// Counters fetches every counter the user may see, concurrently. A failing
// counter is logged and shown as unavailable without failing the others.
func (s *DashboardService) Counters(ctx context.Context) []CounterValue {
	s.mu.RLock()
	visible := make([]Counter, 0, len(s.counters))
	for _, c := range s.counters {
		if c.Permission == "" || composables.CanUser(ctx, c.Permission) {
			visible = append(visible, c)
		}
	}
	s.mu.RUnlock()

	out := make([]CounterValue, len(visible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, c := range visible {
		g.Go(func() error {
			value, err := c.Fetch(gctx)
			if err != nil {
				composables.UseLogger(ctx).WithError(err).WithField("counter", c.Key).Warn("dashboard counter failed")
				out[i] = CounterValue{Counter: c, Value: Unavailable, Failed: true}
				return nil
			}
			out[i] = CounterValue{Counter: c, Value: value}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
