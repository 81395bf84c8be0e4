package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/api/metrics"
	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// ContextKeyUser is the echo context key under which the authenticated user
// is stored for downstream stages and handlers.
const ContextKeyUser = "user"

// Auth extracts the bearer credential, verifies it through the token service
// and injects the resolved user into the request context. Paths on the
// public allow-list bypass authentication entirely.
func Auth(tokens ports.TokenService, policies *Policies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policies.IsPublic(c.Path()) {
				return next(c)
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "missing_header").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "malformed_header").Inc()
				return domain.ErrUnauthenticated
			}

			user, err := tokens.Verify(c.Request().Context(), parts[1])
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues("auth", "invalid_token").Inc()
				return domain.ErrUnauthenticated
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user injected by Auth, or nil on public paths.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}
