package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chojuninengu/amega-ai/internal/api/metrics"
	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// RateLimit applies the route's tier against the resolved identifier and
// attaches quota headers to the response regardless of outcome.
//
// Identifier precedence: an authenticated identity is bucketed as
// user:<username> so logged-in clients behind a shared NAT are limited
// per-account; anonymous callers fall back to the client IP.
//
// failOpen decides what happens when the counter store is unreachable:
// admit without quota headers (open) or surface 503 (closed). Counts already
// committed for cancelled requests are not rolled back; accounting is
// at-least-once.
func RateLimit(limiter ports.RateLimiter, policies *Policies, failOpen bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tier := domain.TierDefault
			if policy, ok := policies.Lookup(c.Path()); ok && policy.Tier != "" {
				tier = policy.Tier
			}

			identifier := c.RealIP()
			if user := UserFromContext(c); user != nil {
				identifier = "user:" + user.Username
			}

			res, err := limiter.Check(c.Request().Context(), identifier, tier)
			if err != nil {
				metrics.CounterStoreErrorsTotal.Inc()
				if failOpen {
					log.Warn().Err(err).Str("tier", tier).Msg("counter store unavailable, admitting request")
					return next(c)
				}
				log.Error().Err(err).Str("tier", tier).Msg("counter store unavailable, failing closed")
				return domain.ErrUpstreamUnavailable
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt, 10))

			if res.Limited {
				metrics.RateLimitDecisionsTotal.WithLabelValues(res.Tier, "rejected").Inc()
				metrics.GateRejectionsTotal.WithLabelValues("ratelimit", "quota_exceeded").Inc()
				return domain.ErrRateLimited
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(res.Tier, "admitted").Inc()
			return next(c)
		}
	}
}
