package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

const (
	pathLogin          = "/accounts/auth/login/"
	pathChangePassword = "/accounts/auth/change-password/"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Data *loginData `json:"data" validate:"required"`
}

type loginData struct {
	User        *loginUser  `json:"user"         validate:"required"`
	AccessToken string      `json:"access_token" validate:"required"`
	Management  *profileDTO `json:"management"`
	Client      *profileDTO `json:"client"`
	Collector   *profileDTO `json:"collector"`
}

type loginUser struct {
	ID           int64  `json:"id"             validate:"required,gt=0"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"           validate:"required,oneof=admin management client collector"`
	IsFirstLogin bool   `json:"is_first_login"`
}

type profileDTO struct {
	ID         int64  `json:"id"   validate:"required,gt=0"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Management int64  `json:"management"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return toSession(resp.Data)
}

// ChangePassword updates the password of the logged in user.
func (c *Client) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return c.do(ctx, http.MethodPost, pathChangePassword, nil, in, nil)
}

func toSession(d *loginData) (*domain.Session, error) {
	role, err := domain.ParseRole(d.User.Role)
	if err != nil {
		return nil, &domain.RemoteError{Kind: domain.KindMalformed, Message: err.Error(), Err: err}
	}

	name := d.User.Name
	if name == "" {
		name = strings.TrimSpace(d.User.FirstName + " " + d.User.LastName)
	}

	s := &domain.Session{
		ID:           d.User.ID,
		Username:     d.User.Username,
		Name:         name,
		Email:        d.User.Email,
		Token:        d.AccessToken,
		Role:         role,
		IsFirstLogin: d.User.IsFirstLogin,
	}

	var p *profileDTO
	switch role {
	case domain.RoleManagement:
		p = d.Management
	case domain.RoleClient:
		p = d.Client
	case domain.RoleCollector:
		p = d.Collector
	}
	if p != nil {
		s.RoleProfile = &domain.RoleProfile{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Phone:        p.Phone,
			ManagementID: p.Management,
		}
	}
	return s, nil
}
