package composables

import (
	"context"

	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/toast"
	"github.com/worktrack/worktrack/pkg/types"
)

func WithNavItems(ctx context.Context, items []types.NavigationItem) context.Context {
	return context.WithValue(ctx, constants.NavItemsKey, items)
}

// UseNavItems returns the navigation already filtered by permission.
func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, _ := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	return items
}

func WithFlashToasts(ctx context.Context, toasts []toast.Toast) context.Context {
	return context.WithValue(ctx, constants.FlashToastsKey, toasts)
}

func UseFlashToasts(ctx context.Context) []toast.Toast {
	toasts, _ := ctx.Value(constants.FlashToastsKey).([]toast.Toast)
	return toasts
}
