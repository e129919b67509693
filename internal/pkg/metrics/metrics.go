// Package metrics defines and registers all custom Prometheus metrics for the
// chirper API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the /metrics endpoint gathers from it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "chirper"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful signups.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Tweet metrics ─────────────────────────────────────────────────────────────

// TweetsPostedTotal counts tweets accepted by the post operation.
var TweetsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tweets_posted_total",
		Help:      "Total number of tweets posted.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationsTotal counts record store operations.
// Labels:
//   - collection: "users" or "tweets"
//   - op: "load", "scan" or "mutate"
//   - result: "ok", "unavailable", "corrupt" or "rejected" (mutation callback failed)
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "store_operations_total",
		Help:      "Total number of record store operations.",
	},
	[]string{"collection", "op", "result"},
)

// StoreOperationDuration measures a full store operation, including lock
// wait for mutations.
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of record store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection", "op"},
)
