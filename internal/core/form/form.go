// Package form holds the selection rules shared by every "create service"
// form of the dashboard: client → location and waste → subcategory cascades,
// the conditional waste fields, and the client-side submission guard.
//
// Every role-specific form (admin, management, client, recurring) goes
// through the same Resolver; a Config only says which fields are pre-filled
// or locked.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// Variant names a role-specific form.
type Variant string

const (
	VariantAdmin      Variant = "admin"
	VariantManagement Variant = "management"
	VariantClient     Variant = "client"
	VariantRecurring  Variant = "recurring"
)

// ParseVariant validates a variant path segment.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantAdmin, VariantManagement, VariantClient, VariantRecurring:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// AllowedFor reports whether a role may open the variant. Collectors never
// create services.
func (v Variant) AllowedFor(r domain.Role) bool {
	switch r {
	case domain.RoleAdmin:
		return v == VariantAdmin || v == VariantRecurring
	case domain.RoleManagement:
		return v == VariantManagement || v == VariantRecurring
	case domain.RoleClient:
		return v == VariantClient
	}
	return false
}

// Field names a form control.
type Field string

const (
	FieldClient        Field = "client"
	FieldLocation      Field = "location"
	FieldTypeService   Field = "type_service"
	FieldWaste         Field = "waste"
	FieldSubcategory   Field = "waste_subcategory"
	FieldScheduledDate Field = "scheduled_date"
	FieldFrequency     Field = "frequency"
	FieldNotes         Field = "notes"
)

var (
	ErrUnknownVariant    = errors.New("unknown form variant")
	ErrUnknownField      = errors.New("unknown form field")
	ErrFieldLocked       = errors.New("field is pre-filled and cannot be changed")
	ErrFieldDisabled     = errors.New("field is disabled")
	ErrOptionUnavailable = errors.New("option is not available")
	ErrInvalidValue      = errors.New("invalid value")
	ErrSubmitInProgress  = errors.New("a submission is already in progress")
)

// Config describes how a variant presents the shared fields.
type Config struct {
	Variant Variant
	// LockClient pre-fills Client and hides the client selector.
	LockClient bool
	Client     int64
	// RequireFrequency is set for recurring schedules.
	RequireFrequency bool
}

// ConfigFor derives the form configuration for a variant and the current session.
// Client users always get their own client pre-filled, whatever the variant.
func ConfigFor(v Variant, s domain.Session) Config {
	cfg := Config{Variant: v, RequireFrequency: v == VariantRecurring}
	if v == VariantClient || s.Role == domain.RoleClient {
		cfg.LockClient = true
		if s.RoleProfile != nil {
			cfg.Client = s.RoleProfile.ID
		}
	}
	return cfg
}

// References are the read-only collections a form chooses from.
// Until Loaded is set every option list is empty.
type References struct {
	Clients       []domain.Client
	Locations     []domain.Location
	Wastes        []domain.Waste
	Subcategories []domain.WasteSubcategory
	TypeServices  []domain.TypeService
	Loaded        bool
}

// wasteCollectionKeywords decide, by case-insensitive substring match on the
// type-service name, whether waste details are asked for.
var wasteCollectionKeywords = []string{
	"recolección",
	"recoleccion",
	"residuo",
	"waste",
	"collection",
	"general",
}

// IsWasteCollection reports whether a type-service name denotes a waste
// collection service.
func IsWasteCollection(name string) bool {
	n := strings.ToLower(name)
	for _, k := range wasteCollectionKeywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// FieldErrors maps a field name to its inline validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		parts = append(parts, fe[f])
	}
	return strings.Join(parts, "; ")
}

// Fields returns the offending field names in stable order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for k := range fe {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
