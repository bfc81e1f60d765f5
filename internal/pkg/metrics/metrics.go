// Package metrics holds the Prometheus collectors of the service: HTTP traffic and
// order status transitions.
package metrics

import (
	"net/http"

	"evashoes/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evashoes"

// Metrics owns a dedicated registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Transitions *prometheus.CounterVec

	// Store is refreshed by the stats report job.
	Store   *prometheus.GaugeVec
	Revenue prometheus.Gauge
}

func New() *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route", "method"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Order status transitions by outcome.",
	}, []string{"from", "to", "result"})

	store := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_entities",
		Help:      "Store counters from the last stats report.",
	}, []string{"kind"})
	revenue := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_revenue",
		Help:      "Sum of ledger totals from the last stats report.",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests, latency, transitions,
		store, revenue,
	)

	return &Metrics{
		registry:    registry,
		Requests:    requests,
		LatencyMS:   latency,
		Transitions: transitions,
		Store:       store,
		Revenue:     revenue,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) TransitionApplied(from, to order.Status) {
	m.Transitions.WithLabelValues(from.String(), to.String(), "applied").Inc()
}

func (m *Metrics) TransitionRejected(from, to order.Status) {
	m.Transitions.WithLabelValues(from.String(), to.String(), "rejected").Inc()
}

// ObserveStoreStats publishes the latest back-office counters.
func (m *Metrics) ObserveStoreStats(products, customers, deliveredOrders, pendingOrders int64, revenue float64) {
	m.Store.WithLabelValues("products").Set(float64(products))
	m.Store.WithLabelValues("customers").Set(float64(customers))
	m.Store.WithLabelValues("delivered_orders").Set(float64(deliveredOrders))
	m.Store.WithLabelValues("pending_orders").Set(float64(pendingOrders))
	m.Revenue.Set(revenue)
}
