package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectMetric extracts a label-matched metric from a Collector.
func collectMetric(t *testing.T, c prometheus.Collector, labels map[string]string) *dto.Metric {
	t.Helper()

	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}

		match := true
		for k, v := range labels {
			found := false
			for _, lp := range d.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			return d
		}
	}
	return nil
}

// metricsRouter mounts a handler behind the metrics middleware on a chi
// router so the route pattern is available as a label.
func metricsRouter(serviceName, pattern string, handler http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics(serviceName))
	r.Get(pattern, handler)
	return r
}

// ============================================================================
// PrometheusMetrics Tests
// ============================================================================

func TestPrometheusMetrics_CountsRequestsPerRoute(t *testing.T) {
	router := metricsRouter("count-svc", "/api/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	labels := map[string]string{"service": "count-svc", "method": "GET", "path": "/api/products", "status": "200"}
	m := collectMetric(t, httpRequestsTotal, labels)
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(3))
}

func TestPrometheusMetrics_RoutePatternLabelsParameterizedPaths(t *testing.T) {
	router := metricsRouter("pattern-svc", "/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/products/1", "/api/products/2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Both requests land on the one pattern series, not per-id series.
	labels := map[string]string{"service": "pattern-svc", "path": "/api/products/{id}", "status": "200"}
	m := collectMetric(t, httpRequestsTotal, labels)
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(2))
}

func TestPrometheusMetrics_ObservesDurationWithStatus(t *testing.T) {
	router := metricsRouter("hist-svc", "/api/order", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	labels := map[string]string{"service": "hist-svc", "method": "GET", "path": "/api/order", "status": "201"}
	m := collectMetric(t, httpRequestDuration, labels)
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}

func TestPrometheusMetrics_InFlightGauge(t *testing.T) {
	seen := make(chan float64, 1)
	router := metricsRouter("flight-svc", "/api/pages", func(w http.ResponseWriter, r *http.Request) {
		m := collectMetric(t, httpRequestsInFlight, map[string]string{"service": "flight-svc"})
		if m != nil {
			seen <- m.GetGauge().GetValue()
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages", nil))

	require.NotEmpty(t, seen)
	assert.GreaterOrEqual(t, <-seen, float64(1))
}
