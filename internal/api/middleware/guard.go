package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/pkg/metrics"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// GuardOptions names the routes the guard redirects to.
type GuardOptions struct {
	LoginPath          string
	ChangePasswordPath string
	// PasswordGateExempt are request paths a first-login user may still reach.
	PasswordGateExempt []string
}

// Guard protects every route behind it:
//   - while the session is rehydrating it answers 503 with a loading body.
//   - anonymous requests are redirected to the login page with ?next=.
//   - first-login users are redirected to the change-password page, except
//     for the exempt paths.
//
// Otherwise it injects "session" and "role" into the context.
func Guard(sessions ports.SessionReader, opts GuardOptions) echo.MiddlewareFunc {
	exempt := make(map[string]struct{}, len(opts.PasswordGateExempt))
	for _, p := range opts.PasswordGateExempt {
		exempt[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.Loading() {
				metrics.GuardDecisionsTotal.WithLabelValues("loading").Inc()
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			}

			s := sessions.Current()
			if !s.IsAuthenticated() {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				target := opts.LoginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}

			if s.NeedsPasswordChange() {
				if _, ok := exempt[c.Request().URL.Path]; !ok {
					metrics.GuardDecisionsTotal.WithLabelValues("redirect_password").Inc()
					return c.Redirect(http.StatusFound, opts.ChangePasswordPath)
				}
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			c.Set("session", s)
			c.Set("role", s.Role)
			return next(c)
		}
	}
}
