package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/api/middleware"
	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

// ctxUser extracts the user injected by the Auth middleware and fast-fails
// before any service call: a nil user on a protected route means the
// middleware chain did not run, so the request is refused rather than
// processed with no identity.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
