package composables

import (
	"context"

	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/constants"
)

func WithConfig(ctx context.Context, cfg *configuration.Configuration) context.Context {
	return context.WithValue(ctx, constants.ConfigKey, cfg)
}

// UseConfig returns the configuration the server was started with, falling
// back to the process-wide one.
func UseConfig(ctx context.Context) *configuration.Configuration {
	if cfg, ok := ctx.Value(constants.ConfigKey).(*configuration.Configuration); ok && cfg != nil {
		return cfg
	}
	return configuration.Use()
}
