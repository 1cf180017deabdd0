package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/httpapi"
)

type LoggerOptions struct {
	LogRequestBody  bool
	RequestIDHeader string
	RealIPHeader    string
	Repanic         bool
}

var redactedFields = []string{"password", "token", "secret"}

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if !w.statusWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the HTTP status code
func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func headerOr(r *http.Request, name, fallback string) string {
	if name != "" {
		if v := r.Header.Get(name); v != "" {
			return v
		}
	}
	return fallback
}

var tracer = otel.Tracer("worktrack-middleware")

func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				"middleware."+name,
				trace.WithAttributes(
					attribute.String("middleware.name", name),
					attribute.String("http.method", r.Method),
				),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formatFormValues(f url.Values) map[string]string {
	formValues := make(map[string]string)
	for key, values := range f {
		if isRedacted(key) {
			formValues[key] = "[redacted]"
			continue
		}
		formValues[key] = strings.Join(values, ",")
	}
	return formValues
}

func isRedacted(key string) bool {
	key = strings.ToLower(key)
	for _, f := range redactedFields {
		if strings.Contains(key, f) {
			return true
		}
	}
	return false
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || httpapi.WantsJSON(r)
}

// WithLogger opens the request span, stores a request-scoped logger in the
// context and recovers handler panics.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := headerOr(r, opts.RequestIDHeader, uuid.NewString())
				ip := headerOr(r, opts.RealIPHeader, r.RemoteAddr)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.URL.Path,
					"method":     r.Method,
				})
				fieldsLogger.WithFields(logrus.Fields{
					"ip":         ip,
					"user-agent": r.UserAgent(),
					"htmx":       r.Header.Get("HX-Request") == "true",
				}).Debug("request started")

				if opts.LogRequestBody && r.Method != http.MethodGet &&
					strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
					if err := r.ParseForm(); err == nil {
						fieldsLogger.WithField("request-body", formatFormValues(r.PostForm)).Debug("form request-body parsed")
					}
				}

				propagator := propagation.TraceContext{}
				ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
				ctx, span := tracer.Start(
					ctx,
					"http.request",
					trace.WithSpanKind(trace.SpanKindServer),
					trace.WithAttributes(
						attribute.String("http.method", r.Method),
						attribute.String("http.route", r.URL.Path),
						attribute.String("http.user_agent", r.UserAgent()),
						attribute.String("http.request_id", requestID),
						attribute.String("net.peer.ip", ip),
					),
				)
				defer span.End()

				if spanContext := span.SpanContext(); spanContext.HasTraceID() {
					w.Header().Set("X-Trace-Id", spanContext.TraceID().String())
					fieldsLogger = fieldsLogger.WithField("trace-id", spanContext.TraceID().String())
				}
				w.Header().Set("X-Request-Id", requestID)

				ctx = context.WithValue(ctx, constants.LoggerKey, fieldsLogger)
				ctx = context.WithValue(ctx, constants.RequestStart, start)
				ctx = apiclient.WithRequestID(ctx, requestID)

				wrapped := &responseCaptureWriter{ResponseWriter: w}
				defer func() {
					recovered := recover()
					if recovered == nil {
						return
					}
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"query":    r.URL.RawQuery,
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						if wantsJSON(r) {
							_ = httpapi.WriteError(wrapped, http.StatusInternalServerError,
								"INTERNAL_SERVER_ERROR", "internal server error",
								map[string]string{"request_id": requestID, "path": r.URL.Path})
						} else {
							http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
						}
					}
					if opts.Repanic {
						panic(recovered)
					}
				}()

				next.ServeHTTP(wrapped, r.WithContext(ctx))

				statusCode := wrapped.Status()
				duration := time.Since(start)
				entry := fieldsLogger.WithFields(logrus.Fields{
					"duration":     duration,
					"status-code":  statusCode,
					"status-class": statusCode / 100,
				})
				if statusCode >= http.StatusInternalServerError {
					entry.Warn("request completed")
				} else {
					entry.Info("request completed")
				}
				span.SetAttributes(
					attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
					attribute.Int("http.status_code", statusCode),
				)
			},
		)
	}
}
