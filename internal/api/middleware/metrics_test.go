package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaayaanAi/salon-receptionist/pkg/metrics"
)

// testMetrics собирает коллекторы без регистрации в default registry,
// чтобы тесты не конфликтовали между собой
func testMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func TestMetricsMiddleware_ObservesRequest(t *testing.T) {
	m := testMetrics()

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/tenants/{tenantId}/services", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/salon-farah/services", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Путь в метках - шаблон маршрута, а не конкретный tenant id
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tenants/{tenantId}/services", "200")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestMetricsMiddleware_RecordsErrorStatus(t *testing.T) {
	m := testMetrics()

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/tenants/{tenantId}/bookings/{bookingRef}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/salon-farah/bookings/BK-salon-farah-20261005-099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tenants/{tenantId}/bookings/{bookingRef}", "404")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}
