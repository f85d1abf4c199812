// Package metrics defines and registers the custom Prometheus metrics of the
// gatekeeper service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gatekeeper"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionDecodeFailuresTotal counts session cookies that could not be decoded
// and were treated as anonymous.
var SessionDecodeFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_decode_failures_total",
		Help:      "Total number of malformed session cookies dropped.",
	},
)

// SessionEnrichmentTotal counts where the effective admin flag came from.
// Label:
//   - source: "cookie", "store" or "fallback" (lookup failed)
var SessionEnrichmentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_enrichment_total",
		Help:      "Total number of enriched sessions, by admin flag source.",
	},
	[]string{"source"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts policy decisions.
// Labels:
//   - class: resource class guarded by the route (e.g. "owner")
//   - outcome: "allow", "redirect" or "deny"
//   - reason: "", "unauthorized", "forbidden", "setup_locked", "store_unavailable"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions.",
	},
	[]string{"class", "outcome", "reason"},
)

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// LoginsTotal counts issued sessions.
// Label:
//   - role: "owner" or "member"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of session cookies issued, by role.",
	},
	[]string{"role"},
)

// ResetOperationsTotal counts reset attempts.
// Label:
//   - result: "success", "partial", "refused" or "error"
var ResetOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_operations_total",
		Help:      "Total number of reset attempts, by result.",
	},
	[]string{"result"},
)
