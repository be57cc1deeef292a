package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/pkg/metrics"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/service"
)

const (
	PathLogin          = "/login"
	PathLogout         = "/logout"
	PathChangePassword = "/change-password"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionReader
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionReader) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type sessionView struct {
	ID             int64               `json:"id"`
	Username       string              `json:"username"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Role           domain.Role         `json:"role"`
	RoleProfile    *domain.RoleProfile `json:"role_profile,omitempty"`
	IsFirstLogin   bool                `json:"is_first_login"`
	TokenExpiresAt *time.Time          `json:"token_expires_at,omitempty"`
}

type authResponse struct {
	Redirect string       `json:"redirect"`
	User     *sessionView `json:"user,omitempty"`
}

type sessionResponse struct {
	Loading       bool         `json:"loading"`
	Authenticated bool         `json:"authenticated"`
	User          *sessionView `json:"user,omitempty"`
}

func newSessionView(s domain.Session) *sessionView {
	v := &sessionView{
		ID:           s.ID,
		Username:     s.Username,
		Name:         s.Name,
		Email:        s.Email,
		Role:         s.Role,
		RoleProfile:  s.RoleProfile,
		IsFirstLogin: s.IsFirstLogin,
	}
	if info, ok := service.InspectToken(s.Token); ok && !info.ExpiresAt.IsZero() {
		exp := info.ExpiresAt
		v.TokenExpiresAt = &exp
	}
	return v
}

// Login authenticates against the EcoTrash API and stores the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	s, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	redirect := s.Role.Home()
	if s.NeedsPasswordChange() {
		metrics.LoginsTotal.WithLabelValues("first_login").Inc()
		redirect = PathChangePassword
	} else {
		metrics.LoginsTotal.WithLabelValues("ok").Inc()
		if next := SafeNext(req.Next); next != "" {
			redirect = next
		}
	}

	return c.JSON(http.StatusOK, authResponse{Redirect: redirect, User: newSessionView(s)})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUnverifiedAccount):
		return "unverified"
	default:
		return "error"
	}
}

// LoginPage handles GET /login. Users who are already logged in are sent on
// to where they were going, or to the password change when it is pending.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	next := SafeNext(c.QueryParam("next"))
	if !h.sessions.Loading() && h.sessions.IsAuthenticated() {
		s := h.sessions.Current()
		target := s.Role.Home()
		switch {
		case s.NeedsPasswordChange():
			target = PathChangePassword
		case next != "":
			target = next
		}
		return c.Redirect(http.StatusFound, target)
	}
	return c.JSON(http.StatusOK, map[string]string{"next": next})
}

// Logout clears the session. It is reachable in every session state.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, authResponse{Redirect: PathLogin})
}

// ChangePassword updates the password and ends the session so the user logs
// in again with the new one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.authService.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Redirect: PathLogin})
}

// Session reports the current session without redirecting.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	if h.sessions.Loading() {
		return c.JSON(http.StatusOK, sessionResponse{Loading: true})
	}
	if !h.sessions.IsAuthenticated() {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          newSessionView(h.sessions.Current()),
	})
}

// SafeNext keeps a post-login target only when it is a local path, so a
// crafted link cannot send the user to another host. Auth pages are dropped.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	switch u.Path {
	case PathLogin, PathLogout, PathChangePassword:
		return ""
	}
	return next
}
