// Package metrics defines and registers all custom Prometheus metrics for
// the customer service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customer"

// RPCRequestsTotal counts inbound RPC calls by message pattern.
var RPCRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Total number of inbound RPC calls, by message pattern.",
	},
	[]string{"pattern"},
)

// RPCErrorsTotal counts RPC calls that ended in a classified error.
// Labels:
//   - pattern: the inbound message pattern
//   - status: the classified status code returned to the caller
var RPCErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_errors_total",
		Help:      "Total number of RPC calls answered with a classified error.",
	},
	[]string{"pattern", "status"},
)

// RPCRequestDuration measures end-to-end handling time per pattern,
// including identity resolution.
var RPCRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_request_duration_seconds",
		Help:      "Duration of RPC handling from decode to reply.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"pattern"},
)

// CustomersCreatedTotal counts successfully created customers.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// UserResolvesTotal counts outbound identity resolutions.
// Label:
//   - result: "ok", "cache_hit" (served without a remote call), or "error"
var UserResolvesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_resolves_total",
		Help:      "Total number of identity resolver lookups, by result.",
	},
	[]string{"result"},
)
