package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// AuthService implements login, logout and the mandatory password change on
// top of the EcoTrash API and the session store.
type AuthService struct {
	api    ports.AuthAPI
	store  *SessionStore
	logger zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, store *SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, store: store, logger: logger}
}

// Login authenticates against the backend and stores the resulting session.
// A first-login session is stored too; the password gate takes over from there.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, mapAuthError(err)
	}

	s.store.Login(ctx, *sess)
	s.logger.Info().
		Int64("user_id", sess.ID).
		Str("role", string(sess.Role)).
		Bool("first_login", sess.IsFirstLogin).
		Msg("login succeeded")
	return *sess, nil
}

// Logout clears the session. It is safe to call when already logged out.
func (s *AuthService) Logout(ctx context.Context) {
	s.store.Logout(ctx)
}

// ChangePassword updates the password and then drops the session so the user
// must log in again with the new credential.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.api.ChangePassword(ctx, ports.ChangePasswordInput{
		CurrentPassword: current,
		NewPassword:     next,
	}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.store.Logout(ctx)
	s.logger.Info().Msg("password changed, session cleared")
	return nil
}

// mapAuthError turns login-specific statuses into domain errors and leaves
// everything else (network, validation) for the generic classifier.
func mapAuthError(err error) error {
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Kind == domain.KindHTTP {
		switch re.Status {
		case http.StatusUnauthorized:
			return domain.ErrInvalidCredentials
		case http.StatusForbidden:
			return domain.ErrUnverifiedAccount
		}
	}
	return err
}
