// Package metrics defines and registers the custom Prometheus metrics of the
// cartorio API. It is the single source of truth for metric names, labels and
// help strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cartorio"

// ── Authentication ──────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the bearer token middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "invalid_subject" or "error"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication.",
	},
	[]string{"reason"},
)

// ── Accounts ────────────────────────────────────────────────────────────────

// AccountChangesTotal counts successful account lifecycle operations.
// Label:
//   - action: "created", "updated" or "deleted"
var AccountChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_changes_total",
		Help:      "Total number of account lifecycle changes, by action.",
	},
	[]string{"action"},
)

// ── Audit trail ─────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entries by outcome.
// Label:
//   - result: "written", "failed" or "dropped" (queue full or closed)
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries, by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the entries waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long one sink write takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit sink write.",
		Buckets:   prometheus.DefBuckets,
	},
)
