package middleware

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsLabelsByTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestRouter(t, Metrics(WithRegistry(reg)))

	serve(r, http.MethodGet, "/users/1")
	serve(r, http.MethodGet, "/users/2")
	serve(r, http.MethodGet, "/boom")
	serve(r, http.MethodGet, "/nowhere")

	m := metricsFor(MetricsConfig{Registry: reg})

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("GET", "/users/:id", "200")); got != 2 {
		t.Errorf("requests_total(/users/:id, 200) = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("GET", "/boom", "500")); got != 1 {
		t.Errorf("requests_total(/boom, 500) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("GET", unmatchedRoute, "404")); got != 1 {
		t.Errorf("requests_total(unmatched, 404) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.routeMisses.WithLabelValues("GET")); got != 1 {
		t.Errorf("route_misses_total = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("GET", "/users/:id")); got != 2 {
		t.Errorf("request_duration_seconds count = %d, want 2", got)
	}
}

func TestMetricsSameRegistryTwice(t *testing.T) {
	reg := prometheus.NewRegistry()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("second Metrics call panicked: %v", r)
		}
	}()
	Metrics(WithRegistry(reg))
	Metrics(WithRegistry(reg))
}

func TestMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestRouter(t, Metrics(WithRegistry(reg), WithNamespace("shop"), WithSubsystem("web")))
	serve(r, http.MethodGet, "/users/1")

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"shop_web_requests_total", "shop_web_request_duration_seconds"} {
		if !names[want] {
			t.Errorf("missing metric family %s (have %v)", want, names)
		}
	}
}
