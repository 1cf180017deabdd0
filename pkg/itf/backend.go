// Package itf is the test harness: a fake REST backend speaking the
// {success,data,message} envelope and an HTTP suite running the real
// middleware stack against it.
package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/apiclient"
)

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON request body into v.
func (c Call) Decode(tb testing.TB, v any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal(c.Body, v))
}

type Backend struct {
	tb    testing.TB
	mux   *http.ServeMux
	srv   *httptest.Server
	mu    sync.Mutex
	calls []Call
}

func NewBackend(tb testing.TB) *Backend {
	tb.Helper()
	b := &Backend{tb: tb, mux: http.NewServeMux()}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	tb.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	b.mu.Lock()
	b.calls = append(b.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	b.mu.Unlock()
	b.mux.ServeHTTP(w, r)
}

// Handle registers h for a ServeMux pattern such as "GET /api/users/{id}".
func (b *Backend) Handle(pattern string, h http.HandlerFunc) *Backend {
	b.mux.HandleFunc(pattern, h)
	return b
}

// Respond registers a handler that always answers with data.
func (b *Backend) Respond(pattern string, data any) *Backend {
	return b.Handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		OK(w, data)
	})
}

// RespondError registers a handler that always fails with status and message.
func (b *Backend) RespondError(pattern string, status int, message string) *Backend {
	return b.Handle(pattern, func(w http.ResponseWriter, _ *http.Request) {
		Fail(w, status, message)
	})
}

func (b *Backend) URL() string {
	return b.srv.URL
}

func (b *Backend) Client() *apiclient.Client {
	b.tb.Helper()
	c, err := apiclient.New(apiclient.Options{BaseURL: b.srv.URL, RequestIDHeader: "X-Request-ID"})
	require.NoError(b.tb, err)
	return c
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallsTo returns the calls matching method and path exactly.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// LastCall fails the test when no call matched method and path.
func (b *Backend) LastCall(method, path string) Call {
	b.tb.Helper()
	calls := b.CallsTo(method, path)
	require.NotEmpty(b.tb, calls, "no %s %s call recorded", method, path)
	return calls[len(calls)-1]
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func OK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": data, "message": "ok"})
}

func Fail(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, map[string]any{"success": false, "data": nil, "message": message})
}

// Page builds the data of a list endpoint.
func Page[T any](items []T, total, page, limit int) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{"items": items, "total": total, "page": page, "limit": limit}
}
