package composables

import (
	"context"

	"github.com/worktrack/worktrack/pkg/authz"
)

// UseAuthzViewState returns the authz.ViewState stored in the context, when available.
func UseAuthzViewState(ctx context.Context) *authz.ViewState {
	return authz.ViewStateFromContext(ctx)
}

func WithAuthzViewState(ctx context.Context, state *authz.ViewState) context.Context {
	return authz.WithViewState(ctx, state)
}
