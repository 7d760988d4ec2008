package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinique_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clinique_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	accessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinique_access_denied_total",
		Help: "Requests rejected by the role gate",
	}, []string{"operation", "role"})

	assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinique_assignments_total",
		Help: "Clinic assignment batches by role and result",
	}, []string{"role", "result"})

	lowStockItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinique_equipment_low_stock_items",
		Help: "Active equipment rows at or below their minimum stock, as of the last query",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func ObserveAccessDenied(operation, role string) {
	accessDenied.WithLabelValues(operation, role).Inc()
}

// ObserveAssignment counts an assignment batch; result is "ok" or "rejected".
func ObserveAssignment(role, result string) {
	assignments.WithLabelValues(role, result).Inc()
}

func SetLowStock(n int) {
	lowStockItems.Set(float64(n))
}
