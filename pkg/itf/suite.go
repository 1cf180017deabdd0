package itf

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/antchfx/htmlquery"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/worktrack/worktrack/internal/server"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/configuration"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
)

// Config returns the configuration the suite runs with unless WithConfig
// replaces it. Modules under test should be built with the same value.
func Config() *configuration.Configuration {
	return &configuration.Configuration{
		Backend: configuration.BackendOptions{Timeout: 5 * time.Second},
		Session: configuration.SessionOptions{
			CookieKey: "sid",
			Duration:  time.Hour,
			Store:     "memory",
		},
		CORS:             configuration.CORSOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		GoAppEnvironment: "test",
		Origin:           "http://localhost:3200",
		PageSize:         25,
		MaxPageSize:      100,
		MaxUploadSize:    1 << 20,
		MaxUploadMemory:  1 << 20,
		SearchDebounce:   400 * time.Millisecond,
		RequestIDHeader:  "X-Request-ID",
		RealIPHeader:     "X-Real-IP",
	}
}

type options struct {
	modules     []application.Module
	config      *configuration.Configuration
	user        *session.User
	permissions []string
}

type Option func(*options)

func WithModules(modules ...application.Module) Option {
	return func(o *options) {
		o.modules = append(o.modules, modules...)
	}
}

func WithConfig(cfg *configuration.Configuration) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithUser signs every request in as u holding permissions.
func WithUser(u session.User, permissions ...string) Option {
	return func(o *options) {
		o.user = &u
		o.permissions = permissions
	}
}

type Suite struct {
	T        testing.TB
	App      application.Application
	Backend  *Backend
	Sessions *session.MemoryStore
	Config   *configuration.Configuration
	// Session is nil for anonymous suites.
	Session *session.Session
	Events  eventbus.EventBus

	router *mux.Router
}

// Setup builds the application against a fresh fake backend and mounts the
// full middleware stack.
func Setup(tb testing.TB, opts ...Option) *Suite {
	tb.Helper()
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		o.config = Config()
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	backend := NewBackend(tb)
	store := session.NewMemoryStore()
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{
		API:      backend.Client(),
		Sessions: store,
		EventBus: bus,
	})
	require.NoError(tb, application.LoadModules(app, o.modules...))

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: o.config,
		Application:   app,
	})
	require.NoError(tb, err)

	s := &Suite{
		T:        tb,
		App:      app,
		Backend:  backend,
		Sessions: store,
		Config:   o.config,
		Events:   bus,
		router:   srv.Router(),
	}
	if o.user != nil {
		s.Session = session.New("test-token", *o.user, o.permissions, time.Hour)
		require.NoError(tb, store.Save(tb.Context(), s.Session))
	}
	return s
}

// Router exposes the mounted routes for tests that walk them.
func (s *Suite) Router() *mux.Router {
	return s.router
}

type Request struct {
	s           *Suite
	method      string
	path        string
	header      http.Header
	body        io.Reader
	contentType string
	cookies     []*http.Cookie
	anonymous   bool
}

func (s *Suite) NewRequest(method, path string) *Request {
	return &Request{s: s, method: method, path: path, header: http.Header{}}
}

func (s *Suite) GET(path string) *Request    { return s.NewRequest(http.MethodGet, path) }
func (s *Suite) POST(path string) *Request   { return s.NewRequest(http.MethodPost, path) }
func (s *Suite) PUT(path string) *Request    { return s.NewRequest(http.MethodPut, path) }
func (s *Suite) PATCH(path string) *Request  { return s.NewRequest(http.MethodPatch, path) }
func (s *Suite) DELETE(path string) *Request { return s.NewRequest(http.MethodDelete, path) }

// HTMX marks the request as issued by htmx.
func (r *Request) HTMX() *Request {
	r.header.Set("HX-Request", "true")
	return r
}

// Target sets the element id htmx swaps the response into.
func (r *Request) Target(id string) *Request {
	r.header.Set("HX-Target", id)
	return r.HTMX()
}

func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

func (r *Request) Cookie(c *http.Cookie) *Request {
	r.cookies = append(r.cookies, c)
	return r
}

// Anonymous drops the suite's session cookie.
func (r *Request) Anonymous() *Request {
	r.anonymous = true
	return r
}

func (r *Request) Form(values url.Values) *Request {
	r.body = strings.NewReader(values.Encode())
	r.contentType = "application/x-www-form-urlencoded"
	return r
}

func (r *Request) JSON(v any) *Request {
	data, err := json.Marshal(v)
	require.NoError(r.s.T, err)
	r.body = bytes.NewReader(data)
	r.contentType = "application/json"
	r.header.Set("Accept", "application/json")
	return r
}

// File sends a multipart form holding fields and one file.
func (r *Request) File(fields url.Values, field, name string, content []byte) *Request {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(r.s.T, w.WriteField(k, v))
		}
	}
	part, err := w.CreateFormFile(field, name)
	require.NoError(r.s.T, err)
	_, err = part.Write(content)
	require.NoError(r.s.T, err)
	require.NoError(r.s.T, w.Close())
	r.body = buf
	r.contentType = w.FormDataContentType()
	return r
}

func (r *Request) Do() *Response {
	r.s.T.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.s.Session != nil && !r.anonymous {
		req.AddCookie(&http.Cookie{Name: r.s.Config.Session.CookieKey, Value: r.s.Session.ID})
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.s.router.ServeHTTP(rec, req)
	return &Response{t: r.s.T, rec: rec}
}

type Response struct {
	t   testing.TB
	rec *httptest.ResponseRecorder
	doc *html.Node
}

func (r *Response) Status() int {
	return r.rec.Code
}

func (r *Response) Header() http.Header {
	return r.rec.Header()
}

func (r *Response) Body() string {
	return r.rec.Body.String()
}

func (r *Response) Cookies() []*http.Cookie {
	return r.rec.Result().Cookies()
}

// Cookie returns the cookie named name set by the response, or nil.
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Trigger decodes the HX-Trigger header into event name and detail.
func (r *Response) Trigger() map[string]any {
	raw := r.rec.Header().Get("HX-Trigger")
	out := map[string]any{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		for _, name := range strings.Split(raw, ",") {
			out[strings.TrimSpace(name)] = nil
		}
	}
	return out
}

func (r *Response) JSON(v any) {
	r.t.Helper()
	require.NoError(r.t, json.Unmarshal(r.rec.Body.Bytes(), v))
}

func (r *Response) HTML() *HTML {
	r.t.Helper()
	if r.doc == nil {
		doc, err := htmlquery.Parse(strings.NewReader(r.Body()))
		require.NoError(r.t, err)
		r.doc = doc
	}
	return &HTML{t: r.t, doc: r.doc}
}

// HTML wraps a parsed document with XPath helpers.
type HTML struct {
	t   testing.TB
	doc *html.Node
}

func (h *HTML) Find(xpath string) []*html.Node {
	h.t.Helper()
	nodes, err := htmlquery.QueryAll(h.doc, xpath)
	require.NoError(h.t, err, "invalid xpath %q", xpath)
	return nodes
}

func (h *HTML) FindOne(xpath string) *html.Node {
	h.t.Helper()
	node, err := htmlquery.Query(h.doc, xpath)
	require.NoError(h.t, err, "invalid xpath %q", xpath)
	return node
}

func (h *HTML) Exists(xpath string) bool {
	return h.FindOne(xpath) != nil
}

// Text returns the trimmed inner text of the first match, failing when
// nothing matches.
func (h *HTML) Text(xpath string) string {
	h.t.Helper()
	node := h.FindOne(xpath)
	require.NotNil(h.t, node, "no element matches %q", xpath)
	return strings.TrimSpace(htmlquery.InnerText(node))
}

func (h *HTML) Attr(xpath, name string) string {
	h.t.Helper()
	node := h.FindOne(xpath)
	require.NotNil(h.t, node, "no element matches %q", xpath)
	return htmlquery.SelectAttr(node, name)
}
