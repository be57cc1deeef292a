package ports

import (
	"context"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// AuthService is the login / logout / password flow used by the gateway and CLI.
type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context)
	ChangePassword(ctx context.Context, current, next string) error
}

// SessionReader is the read side of the session store.
type SessionReader interface {
	Current() domain.Session
	IsAuthenticated() bool
	Loading() bool
}
