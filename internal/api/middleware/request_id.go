package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/backend"
)

// PropagateRequestID copies the inbound request ID (set by Echo's RequestID
// middleware) into the request context so backend calls reuse it.
func PropagateRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(backend.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
