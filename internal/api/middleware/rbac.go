package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/api/metrics"
	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

// RBAC enforces the route policy table against the authenticated user's
// role. It runs after Auth, so a missing context user on a non-public path
// means the chain was miswired and the request is refused.
func RBAC(policies *Policies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policies.IsPublic(c.Path()) {
				return next(c)
			}

			user := UserFromContext(c)
			if user == nil {
				metrics.GateRejectionsTotal.WithLabelValues("rbac", "no_identity").Inc()
				return domain.ErrUnauthenticated
			}

			policy, declared := policies.Lookup(c.Path())
			if !declared {
				if policies.DefaultDeny {
					metrics.GateRejectionsTotal.WithLabelValues("rbac", "undeclared_route").Inc()
					return domain.ErrForbidden
				}
				// Legacy permissive mode: unlisted routes only require
				// authentication.
				return next(c)
			}

			if policy.RequiredRole != "" && !domain.RoleSatisfies(user.Role, policy.RequiredRole) {
				metrics.GateRejectionsTotal.WithLabelValues("rbac", "role_denied").Inc()
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
