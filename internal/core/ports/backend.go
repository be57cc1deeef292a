package ports

import (
	"context"
	"encoding/json"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// AuthAPI covers the authentication endpoints of the EcoTrash API.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
}

// ChangePasswordInput is sent to the backend on the mandatory password change.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ReferenceAPI lists the reference sets that populate service forms.
type ReferenceAPI interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListWastes(ctx context.Context) ([]domain.Waste, error)
	ListWasteSubcategories(ctx context.Context) ([]domain.WasteSubcategory, error)
	ListTypeServices(ctx context.Context) ([]domain.TypeService, error)
}

// ServiceAPI creates services and drives recurring schedules.
type ServiceAPI interface {
	CreateService(ctx context.Context, p domain.ServicePayload) (*domain.Service, error)
	CreateRecurringService(ctx context.Context, p domain.RecurringServicePayload) (*domain.Service, error)
	RecurringAction(ctx context.Context, id int64, action domain.RecurringAction) (json.RawMessage, error)
}

// ResourceAPI is the generic passthrough used by list and detail views.
type ResourceAPI interface {
	List(ctx context.Context, resource string, query map[string]string) (json.RawMessage, error)
	Get(ctx context.Context, resource string, id int64) (json.RawMessage, error)
	Approve(ctx context.Context, resource string, id int64) (json.RawMessage, error)
}
