package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnverifiedAccount  = errors.New("unverified account or insufficient permissions")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownRole        = errors.New("unknown role")

	// ErrSessionNotStored is returned by session storage when the key is absent.
	ErrSessionNotStored = errors.New("session not stored")
	// ErrCorruptSession marks persisted session data that cannot be decoded.
	ErrCorruptSession = errors.New("corrupt session data")

	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUnknownResource  = errors.New("unknown resource")
	ErrUnknownAction    = errors.New("unknown action")
)
