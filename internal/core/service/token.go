package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the dashboard can read from an access token without
// verifying it. The signature is the backend's concern.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT access token. Opaque (non-JWT)
// tokens yield ok=false.
func InspectToken(token string) (TokenInfo, bool) {
	if token == "" {
		return TokenInfo{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return info, true
}
