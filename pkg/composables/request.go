package composables

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/shared"
	"github.com/worktrack/worktrack/pkg/types"
)

// Params describes who sent the current request.
type Params struct {
	IP        string
	UserAgent string
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request-scoped logger. Outside a request it falls
// back to the standard logrus logger.
func UseLogger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, entry)
}

func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

// UsePageCtx returns the page context from the context.
// If the page context is not found, function will panic.
func UsePageCtx(ctx context.Context) *types.PageContext {
	if pageCtx, ok := TryUsePageCtx(ctx); ok {
		return pageCtx
	}
	panic("page context not found")
}

func TryUsePageCtx(ctx context.Context) (*types.PageContext, bool) {
	v, ok := ctx.Value(constants.PageContext).(*types.PageContext)
	return v, ok && v != nil
}

func WithPageCtx(ctx context.Context, pageCtx *types.PageContext) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

func UseQuery[T comparable](v T, r *http.Request) (T, error) {
	return v, shared.Decoder.Decode(v, r.URL.Query())
}

func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.DecodeForm(v, r.Form)
}

// GetLastQueryParam returns the last occurrence of a query parameter.
// hx-include="closest form" appends form values to the URL, so the last
// value is the current form state.
func GetLastQueryParam(r *http.Request, key string) string {
	values := r.URL.Query()[key]
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}

func GetLastQueryParams(r *http.Request, keys ...string) map[string]string {
	result := make(map[string]string, len(keys))
	query := r.URL.Query()
	for _, key := range keys {
		if values := query[key]; len(values) > 0 {
			result[key] = values[len(values)-1]
		}
	}
	return result
}
