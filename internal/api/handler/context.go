package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// ctxSession extracts the session injected by the Guard middleware and
// performs a fast-fail check before any backend call:
//   - the session must be authenticated (presence proves the guard ran).
//   - client users need their role profile; without it the form cannot
//     pre-fill the client and is unusable.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, ok := c.Get("session").(domain.Session)
	if !ok || !s.IsAuthenticated() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	if s.Role == domain.RoleClient && s.RoleProfile == nil {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "session missing client profile")
	}
	return s, nil
}
