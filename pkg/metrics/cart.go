package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart operation and migration outcomes.
type CartMetrics struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	migrations *prometheus.CounterVec
	expired    prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations by backend and operation.",
	}, []string{"backend", "op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operation_failures_total",
		Help: "Failed cart operations by backend and operation.",
	}, []string{"backend", "op"})
	migrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_migrations_total",
		Help: "Guest cart migration attempts by outcome.",
	}, []string{"outcome"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "guest_carts_expired_total",
		Help: "Guest carts discarded because their TTL elapsed.",
	})
	reg.MustRegister(operations, failures, migrations, expired)
	return &CartMetrics{
		operations: operations,
		failures:   failures,
		migrations: migrations,
		expired:    expired,
	}
}

// IncOperation counts one cart operation against the named backend.
func (c *CartMetrics) IncOperation(backend, op string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Inc()
}

// IncFailure counts one failed cart operation.
func (c *CartMetrics) IncFailure(backend, op string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Inc()
}

// IncMigration counts a migration attempt with the given outcome.
func (c *CartMetrics) IncMigration(outcome string) {
	if c == nil || c.migrations == nil {
		return
	}
	c.migrations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncExpiredGuestCart counts a guest cart discarded on TTL expiry.
func (c *CartMetrics) IncExpiredGuestCart() {
	if c == nil || c.expired == nil {
		return
	}
	c.expired.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
