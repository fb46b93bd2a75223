package router

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// bodyLogLimit caps how much of a request or response body is logged.
const bodyLogLimit = 16 * 1024

func matchedRoutePath(r *http.Request) string {
	if p := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); p != "" {
		return p
	}
	return r.URL.Path
}

// recorder captures status, size and the head of the body. Handlers that
// fail report their error through SetError so the span can carry it.
type recorder struct {
	http.ResponseWriter
	status    int
	written   int
	head      bytes.Buffer
	truncated bool
	err       error
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}

	if room := bodyLogLimit - rec.head.Len(); room < len(p) {
		rec.head.Write(p[:max(room, 0)])
		rec.truncated = true
	} else {
		rec.head.Write(p)
	}

	n, err := rec.ResponseWriter.Write(p)
	rec.written += n
	return n, err
}

func (rec *recorder) SetError(err error) { rec.err = err }

func (rec *recorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rec *recorder) statusCode() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}

// peekBody reads up to bodyLogLimit bytes and puts them back in front of the
// remaining body.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	//nolint:errcheck // logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, bodyLogLimit))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return head
}

func loggableBody(m *instrument.Masker, body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}
	if v, ok := m.JSON(body); ok {
		return v
	}
	if !utf8.Valid(body) {
		return "<binary>"
	}
	if truncated {
		return string(body) + "...(truncated)"
	}
	return string(body)
}

type httpTelemetry struct {
	masker   *instrument.Masker
	tracer   trace.Tracer
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

func newHTTPTelemetry(cfg config.Config, ins instrument.Instrumentation) *httpTelemetry {
	var fields []string
	if cfg != nil {
		fields = cfg.GetArray("instrument.log_mask_fields")
	}

	meter := ins.Meter("http.server")
	requests, err := meter.Int64Counter("http.server.requests", metric.WithDescription("HTTP requests served"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}
	latency, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("ms"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return &httpTelemetry{
		masker:   instrument.NewMasker(fields),
		tracer:   ins.Tracer("http.server"),
		requests: requests,
		latency:  latency,
	}
}

func (t *httpTelemetry) record(r *http.Request, rec *recorder, route string, span trace.Span, elapsed time.Duration) {
	status := rec.statusCode()
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
		semconv.HTTPResponseStatusCodeKey.Int(status),
	}

	span.SetAttributes(attrs...)
	span.SetAttributes(
		semconv.ServerAddressKey.String(r.Host),
		attribute.String("http.user_agent", r.UserAgent()),
		attribute.Int("http.response_content_length", rec.written),
	)
	if rec.err != nil {
		span.RecordError(rec.err)
	}
	switch {
	case status < http.StatusInternalServerError:
		span.SetStatus(codes.Ok, "")
	case rec.err != nil:
		span.SetStatus(codes.Error, rec.err.Error())
	default:
		span.SetStatus(codes.Error, http.StatusText(status))
	}

	ctx := r.Context()
	if t.requests != nil {
		t.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if t.latency != nil {
		t.latency.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attrs...))
	}
}

// middlewareObservability opens a server span per request, logs the masked
// request and response, and records request count and latency.
func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	t := newHTTPTelemetry(cfg, ins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := matchedRoutePath(r)

			ctx, span := t.tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			r = r.WithContext(ctx)

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"headers", t.masker.Header(r.Header),
				"body", loggableBody(t.masker, peekBody(r), false),
			)

			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			t.record(r, rec, route, span, elapsed)

			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"status", rec.statusCode(),
				"headers", t.masker.Header(rec.Header()),
				"bytes", rec.written,
				"latency_ms", elapsed.Milliseconds(),
				"body", loggableBody(t.masker, rec.head.Bytes(), rec.truncated),
			)
		})
	}
}
