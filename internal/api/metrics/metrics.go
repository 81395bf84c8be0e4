// Package metrics defines and registers all custom Prometheus metrics for
// the amega-ai API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "amega"

// GateRejectionsTotal counts requests short-circuited by the gatekeeping
// chain before reaching a business handler.
// Labels:
//   - stage: the pipeline stage that rejected ("validation", "auth", "rbac", "ratelimit")
//   - reason: short failure cause (e.g. "body_too_large", "invalid_token", "role_denied", "quota_exceeded")
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the gatekeeping pipeline.",
	},
	[]string{"stage", "reason"},
)

// RateLimitDecisionsTotal counts rate-limit admission decisions.
// Labels:
//   - tier: the applied tier name
//   - result: "admitted" or "rejected"
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_decisions_total",
		Help:      "Total number of rate limit checks, labelled by tier and result.",
	},
	[]string{"tier", "result"},
)

// CounterStoreErrorsTotal counts failed counter-store round trips. A spike
// here means the limiter is running on its fail-open/closed policy.
var CounterStoreErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_store_errors_total",
		Help:      "Total number of counter store failures during rate limit checks.",
	},
)

// ChatGenerationDuration measures the latency of model backend calls.
// Label:
//   - status: "ok" or "error"
var ChatGenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_generation_duration_seconds",
		Help:      "Duration of model backend generation calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
