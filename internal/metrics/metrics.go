package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Domain operation counters
	ProductOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_movements_total",
			Help: "Ledger movements recorded, by movement type",
		},
		[]string{"type"},
	)

	LowStockAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_low_stock_alerts_total",
			Help: "Low-stock alerts dispatched",
		},
	)

	AuthAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_auth_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_auth_failures_total",
			Help: "Total number of failed login attempts",
		},
	)
)

// RecordProductOperation increments the counter for product operations.
func RecordProductOperation(operation string) {
	ProductOperationsTotal.WithLabelValues(operation).Inc()
}

// RecordStockMovement increments the ledger movement counter.
func RecordStockMovement(movementType string) {
	StockMovementsTotal.WithLabelValues(movementType).Inc()
}
