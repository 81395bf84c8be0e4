package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/api/metrics"
)

// allowedContentTypes are the media type prefixes accepted for requests that
// carry a body.
var allowedContentTypes = []string{
	echo.MIMEApplicationJSON,
	echo.MIMEMultipartForm,
}

// RequestValidation rejects oversized bodies and disallowed content types
// before any authentication or business cost is paid. Read-only requests
// without a body pass through untouched.
func RequestValidation(maxBodyBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				return next(c)
			}

			if cl := c.Request().ContentLength; cl > maxBodyBytes {
				metrics.GateRejectionsTotal.WithLabelValues("validation", "body_too_large").Inc()
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}
			// ContentLength can lie; cap the actual read as well.
			c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes)

			contentType := c.Request().Header.Get(echo.HeaderContentType)
			ok := false
			for _, allowed := range allowedContentTypes {
				if strings.HasPrefix(contentType, allowed) {
					ok = true
					break
				}
			}
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues("validation", "unsupported_media_type").Inc()
				return echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported media type")
			}

			return next(c)
		}
	}
}
