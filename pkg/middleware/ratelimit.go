package middleware

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/worktrack/worktrack/pkg/htmx"
	"github.com/worktrack/worktrack/pkg/httpapi"
	"github.com/worktrack/worktrack/pkg/intl"
	"github.com/worktrack/worktrack/pkg/toast"
)

const rateLimitPrefix = "worktrack:ratelimit"

type RateLimitConfig struct {
	RequestsPerPeriod int
	// Period defaults to one second.
	Period time.Duration
	Store  limiter.Store
	// KeyFunc defaults to the client IP.
	KeyFunc func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		CleanUpInterval: time.Minute,
	})
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		return nil, errors.Wrap(err, "rate limit redis store")
	}
	return store, nil
}

func limitReached(w http.ResponseWriter, r *http.Request) {
	message := intl.T(r.Context(), "Errors.TooManyRequests", "Too many requests. Please slow down.")
	switch {
	case wantsJSON(r):
		_ = httpapi.WriteError(w, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message, nil)
	case htmx.IsHxRequest(r):
		toast.PushError(w, r, message)
		htmx.Reswap(w, "none")
		w.WriteHeader(http.StatusTooManyRequests)
	default:
		http.Error(w, message, http.StatusTooManyRequests)
	}
}

// RateLimit throttles requests per client. A non-positive rate disables it.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	if cfg.RequestsPerPeriod <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	opts := []stdlib.Option{stdlib.WithLimitReachedHandler(limitReached)}
	if cfg.KeyFunc != nil {
		opts = append(opts, stdlib.WithKeyGetter(cfg.KeyFunc))
	}
	lim := limiter.New(store, limiter.Rate{Period: period, Limit: int64(cfg.RequestsPerPeriod)})
	mw := stdlib.NewMiddleware(lim, opts...)
	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
