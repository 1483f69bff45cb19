package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_gateway_requests_total",
			Help: "Data source calls by action and outcome",
		},
		[]string{"source", "action", "outcome"}, // outcome: ok|bad_status|transport|rejected
	)
	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_gateway_request_duration_seconds",
			Help:    "Remote data source call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
)

var (
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations",
		},
		[]string{"op"}, // add|set_qty|remove|clear
	)
	StateOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_state_operations_total",
			Help: "Persisted state store operations",
		},
		[]string{"op", "outcome"}, // op: load|save|delete; outcome: ok|miss|corrupt|error
	)
	StateKeys = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_state_keys",
			Help: "Number of keys held by the in-process state backend",
		},
		[]string{"backend"},
	)
)

var (
	HandoffPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_handoff_total",
			Help: "Order handoff messages by outcome",
		},
		[]string{"outcome"}, // ok|error|skipped
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в default registry; повторный вызов — no-op.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			GatewayRequests, GatewayDuration,
			CartMutations, StateOps, StateKeys,
			HandoffPublished,
		)
	})
}
