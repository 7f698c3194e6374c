// Package metrics defines the Prometheus collectors exposed on /metrics.
// Collectors are registered with the default registry on package init via
// promauto.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

const namespace = "portfolio"

// ── HTTP ─────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP verb
//   - route: matched route template (e.g. "/api/projects/:id"), "unmatched" otherwise
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency including middleware.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - op: "register" or "login"
//   - result: "success", "rejected", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts by operation and result.",
	},
	[]string{"op", "result"},
)

// AuthzDecisionsTotal counts policy outcomes.
// Labels:
//   - action: create, read, update or delete
//   - result: "allow" or the denial reason
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions by action and result.",
	},
	[]string{"action", "result"},
)

// ── Projects ─────────────────────────────────────────────────────────────────

// ProjectMutationsTotal counts successful project writes by op.
var ProjectMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_mutations_total",
		Help:      "Total number of successful project mutations.",
	},
	[]string{"op"},
)

// AuthResult maps an auth service error onto the result label.
func AuthResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateEmail):
		return "rejected"
	default:
		return "error"
	}
}

// AuthzResult maps a service error onto the authz result label. ok is false
// when err says nothing about the policy (e.g. not found).
func AuthzResult(err error) (result string, ok bool) {
	switch {
	case err == nil:
		return "allow", true
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated", true
	case errors.Is(err, domain.ErrInsufficientRole):
		return "insufficient_role", true
	case errors.Is(err, domain.ErrNotOwner):
		return "not_owner", true
	default:
		return "", false
	}
}

// ObserveAuthz records the policy outcome carried by err, if any.
func ObserveAuthz(action string, err error) {
	if result, ok := AuthzResult(err); ok {
		AuthzDecisionsTotal.WithLabelValues(action, result).Inc()
	}
}
