// Package metrics defines and registers all custom Prometheus metrics for
// the assessment portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto and register with the default Prometheus registry at
// package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route-guard evaluations.
// Label:
//   - outcome: "allow", "pending", "login", or "denied"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Assessment event metrics ──────────────────────────────────────────────────

// EventsProcessedTotal counts assessment events that completed processing.
// Label:
//   - status: the workflow status applied by the event (e.g. "grading")
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assessment_events_processed_total",
		Help:      "Total number of assessment events successfully processed.",
	},
	[]string{"status"},
)

// EventsErrorsTotal counts assessment events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "process_failed")
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assessment_events_errors_total",
		Help:      "Total number of assessment events that failed processing.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the current number of events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "assessment_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly placed assessment orders.
// Label:
//   - service_level: "express", "priority", or "standard"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of assessment orders placed, by service level.",
	},
	[]string{"service_level"},
)

// CertificatesIssuedTotal counts issued certificates.
var CertificatesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "certificates_issued_total",
		Help:      "Total number of certificates issued.",
	},
)
