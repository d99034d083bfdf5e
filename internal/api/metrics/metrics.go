// Package metrics defines and registers all custom Prometheus metrics for the
// Encontro API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "encontro"

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsTotal counts enrollment attempts.
// Label:
//   - result: "enrolled", "insufficient_funds", "event_full", "conflict", "error"
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts, by result.",
	},
	[]string{"result"},
)

// UnenrollmentsTotal counts unenrollment attempts.
// Label:
//   - result: "unenrolled", "not_enrolled", "conflict", "error"
var UnenrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unenrollments_total",
		Help:      "Total number of unenrollment attempts, by result.",
	},
	[]string{"result"},
)

// SettlementConflictsTotal counts settlement transactions aborted because a
// concurrent writer invalidated the read. Each retry attempt counts once.
var SettlementConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_conflicts_total",
		Help:      "Total number of settlement transactions aborted by a concurrent writer.",
	},
)

// ── Wallet metrics ────────────────────────────────────────────────────────────

// DepositsTotal counts wallet deposit attempts.
// Label:
//   - result: "ok", "invalid_amount", "limit_exceeded", "error"
var DepositsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_total",
		Help:      "Total number of wallet deposit attempts, by result.",
	},
	[]string{"result"},
)

// LedgerQueueDepth tracks the current number of audit entries waiting in each
// ledger writer channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LedgerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_queue_depth",
		Help:      "Current number of wallet ledger entries pending in each writer channel.",
	},
	[]string{"worker_id"},
)
