// Package metrics defines and registers the custom Prometheus metrics of the
// dashboard gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "first_login", "invalid_credentials", "unverified", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "loading", "redirect_login", "redirect_password", "allow"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Form metrics ──────────────────────────────────────────────────────────────

// FormSubmissionsTotal counts service form submissions.
// Labels:
//   - variant: "admin", "management", "client", "recurring"
//   - result: "created", "rejected" (local validation), "failed" (backend)
var FormSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Total number of service form submissions, by variant and result.",
	},
	[]string{"variant", "result"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the EcoTrash API.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "error" when no response was received
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the EcoTrash API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// BackendErrorsTotal counts failed API calls.
// Label:
//   - kind: "validation", "http", "network", "malformed"
var BackendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_errors_total",
		Help:      "Total number of failed calls to the EcoTrash API, by error kind.",
	},
	[]string{"kind"},
)
