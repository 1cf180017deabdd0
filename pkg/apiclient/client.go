package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const genericMessage = "unexpected response from server"

var tracer = otel.Tracer("worktrack-apiclient")

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	MaxIdleConns    int
	RequestIDHeader string
	Logger          *logrus.Logger
	// HTTPClient overrides the client built from Timeout and MaxIdleConns.
	HTTPClient *http.Client
}

// Client is a thin JSON client for the REST backend. It never retries and
// never caches.
type Client struct {
	baseURL         *url.URL
	httpClient      *http.Client
	requestIDHeader string
	logger          *logrus.Logger
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid backend base url: %q", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Timeout, opts.MaxIdleConns)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:         u,
		httpClient:      httpClient,
		requestIDHeader: opts.RequestIDHeader,
		logger:          logger,
	}, nil
}

func newHTTPClient(timeout time.Duration, maxIdle int) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxIdle <= 0 {
		maxIdle = 200
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdle,
			MaxIdleConnsPerHost: maxIdle,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// RawBody sends pre-encoded bytes with an explicit content type.
type RawBody struct {
	ContentType string
	Data        []byte
}

// File is one part of a multipart upload.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// Multipart is a form upload with plain fields and files.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

func (m *Multipart) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for _, f := range m.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+escapeQuotes(f.Field)+`"; filename="`+escapeQuotes(f.Name)+`"`)
		h.Set("Content-Type", mimetype.Detect(f.Content).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) encodeBody(reqBody any) (io.Reader, string, error) {
	switch b := reqBody.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	case RawBody:
		return bytes.NewReader(b.Data), b.ContentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", errors.Wrap(err, "json marshal request")
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, reqBody any) (*http.Request, error) {
	body, contentType, err := c.encodeBody(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), body)
	if err != nil {
		return nil, errors.Wrap(err, "http request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.requestIDHeader != "" {
		id := RequestIDFrom(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(c.requestIDHeader, id)
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

// Do sends one request and decodes the envelope's data into out (which may be
// nil). reqBody may be nil, a *Multipart, a RawBody, or any JSON value.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	route := routeLabel(path)
	ctx, span := tracer.Start(ctx, "apiclient "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", route),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.do(ctx, method, path, query, reqBody, out)
	observe(method, route, status, time.Since(start))

	span.SetAttributes(attribute.Int("http.status_code", status))
	entry := c.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   status,
		"duration": time.Since(start),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entry.WithError(err).Warn("backend request failed")
		return err
	}
	entry.Debug("backend request completed")
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqBody any, out any) (int, error) {
	req, err := c.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &Error{Method: method, Path: path, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrap(err, "http read")
	}
	return resp.StatusCode, decodeEnvelope(method, path, resp.StatusCode, respBody, out)
}

func decodeEnvelope(method, path string, status int, body []byte, out any) error {
	ok := status >= 200 && status < 300
	if len(bytes.TrimSpace(body)) == 0 {
		if ok {
			return nil
		}
		return &Error{Status: status, Method: method, Path: path}
	}

	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if ok {
			return &Error{Status: http.StatusBadGateway, Message: genericMessage, Method: method, Path: path}
		}
		return &Error{Status: status, Method: method, Path: path}
	}
	if !ok {
		return &Error{Status: status, Message: env.Message, Method: method, Path: path}
	}
	if env.Success != nil && !*env.Success {
		return &Error{Status: status, Message: env.Message, Method: method, Path: path}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "json unmarshal response data")
	}
	return nil
}

// Stream fetches a binary resource (file previews). The caller closes the body.
func (c *Client) Stream(ctx context.Context, path string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "*/*")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &Error{Method: http.MethodGet, Path: path, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, "", decodeEnvelope(http.MethodGet, path, resp.StatusCode, body, nil)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// routeLabel replaces numeric path segments to keep metric cardinality bounded.
func routeLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
			continue
		}
		if _, err := uuid.Parse(s); err == nil {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

func GetPage[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	page, err := Get[Page[T]](ctx, c, path, query)
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, err
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, path, nil, body, &out)
	return out, err
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, path, nil, body, &out)
	return out, err
}

func Patch[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPatch, path, nil, body, &out)
	return out, err
}

func Delete(ctx context.Context, c *Client, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func Upload[T any](ctx context.Context, c *Client, path string, form *Multipart) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, path, nil, form, &out)
	return out, err
}
