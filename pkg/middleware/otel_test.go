package middleware

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/TheOfficialSeb/Styrene/pkg/router"
)

// recordingProvider hands out tracers that keep every started span.
type recordingProvider struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []*recordedSpan
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

type recordingTracer struct {
	embedded.Tracer
	provider *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordedSpan{
		name:  name,
		kind:  cfg.SpanKind(),
		attrs: map[attribute.Key]attribute.Value{},
	}
	for _, kv := range cfg.Attributes() {
		span.attrs[kv.Key] = kv.Value
	}

	t.provider.mu.Lock()
	t.provider.spans = append(t.provider.spans, span)
	t.provider.mu.Unlock()

	return trace.ContextWithSpan(ctx, span), span
}

type recordedSpan struct {
	noop.Span

	name   string
	kind   trace.SpanKind
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordedSpan) End(...trace.SpanEndOption)          { s.ended = true }

func TestTracingSpans(t *testing.T) {
	provider := &recordingProvider{}
	r := newTestRouter(t, Tracing(WithTracerProvider(provider)))

	serve(r, http.MethodGet, "/users/42?tab=1")
	serve(r, http.MethodGet, "/boom")

	if len(provider.spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(provider.spans))
	}

	ok := provider.spans[0]
	if ok.name != "GET /users/:id" {
		t.Errorf("span name = %q", ok.name)
	}
	if ok.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", ok.kind)
	}
	if !ok.ended {
		t.Error("span not ended")
	}
	if got := ok.attrs["http.route"].AsString(); got != "/users/:id" {
		t.Errorf("http.route = %q", got)
	}
	if got := ok.attrs["http.target"].AsString(); got != "/users/42?tab=1" {
		t.Errorf("http.target = %q", got)
	}
	if got := ok.attrs["http.status_code"].AsInt64(); got != 200 {
		t.Errorf("http.status_code = %d", got)
	}
	if ok.status == codes.Error {
		t.Error("2xx span marked as error")
	}

	failed := provider.spans[1]
	if failed.status != codes.Error {
		t.Errorf("5xx span status = %v, want error", failed.status)
	}
}

func TestTracingSpanInContext(t *testing.T) {
	provider := &recordingProvider{}
	r := router.New()
	r.Use(Tracing(WithTracerProvider(provider)))

	var inHandler trace.Span
	r.Get("/x", func(w http.ResponseWriter, req *http.Request) {
		inHandler = trace.SpanFromContext(req.Context())
	})
	serve(r, http.MethodGet, "/x")

	if len(provider.spans) != 1 || inHandler != trace.Span(provider.spans[0]) {
		t.Error("handler did not see the request span")
	}
}

func TestTracingFilterAndAttributes(t *testing.T) {
	provider := &recordingProvider{}
	r := newTestRouter(t, Tracing(
		WithTracerProvider(provider),
		WithTracerName("custom"),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("tenant", "acme")}
		}),
	))

	serve(r, http.MethodGet, "/boom")
	serve(r, http.MethodGet, "/users/1")

	if len(provider.spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(provider.spans))
	}
	if got := provider.spans[0].attrs["tenant"].AsString(); got != "acme" {
		t.Errorf("tenant = %q", got)
	}
}
