package domain

import "fmt"

// Role identifies which dashboard a session is allowed into.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManagement Role = "management"
	RoleClient     Role = "client"
	RoleCollector  Role = "collector"
)

// Roles lists every role the dashboard knows about.
var Roles = []Role{RoleAdmin, RoleManagement, RoleClient, RoleCollector}

// ParseRole converts a raw role string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Home returns the landing path of the role's dashboard.
func (r Role) Home() string {
	switch r {
	case RoleAdmin, RoleManagement, RoleClient, RoleCollector:
		return "/" + string(r)
	default:
		return "/"
	}
}

// RoleProfile carries the role-specific record returned at login
// (management company, client or collector details).
type RoleProfile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ManagementID int64  `json:"management_id,omitempty"`
}

// Session is the client-held record of the logged in user and their bearer token.
// The zero value is the anonymous session.
type Session struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Token        string       `json:"token"`
	Role         Role         `json:"role"`
	RoleProfile  *RoleProfile `json:"role_profile,omitempty"`
	IsFirstLogin bool         `json:"is_first_login"`
}

// Anonymous returns the "no user" session.
func Anonymous() Session {
	return Session{}
}

// IsAuthenticated holds only when both a token and a user id are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.ID != 0
}

// Valid reports whether a rehydrated session is structurally usable.
func (s Session) Valid() bool {
	return s.ID != 0
}

// NeedsPasswordChange reports whether the mandatory password change gate applies.
func (s Session) NeedsPasswordChange() bool {
	return s.IsAuthenticated() && s.IsFirstLogin
}
