package domain

// Frequency is the cadence of a recurring service.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Valid reports whether f is one of the known cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// ServicePayload is the body sent to the backend when creating a service.
// Waste and WasteSubcategory are omitted for non-collection services.
type ServicePayload struct {
	Client           int64  `json:"client"`
	Location         int64  `json:"location"`
	TypeService      int64  `json:"type_service"`
	Waste            *int64 `json:"waste,omitempty"`
	WasteSubcategory *int64 `json:"waste_subcategory,omitempty"`
	ScheduledDate    string `json:"scheduled_date"`
	Notes            string `json:"notes,omitempty"`
}

// RecurringServicePayload is the body sent when creating a recurring schedule.
type RecurringServicePayload struct {
	ServicePayload
	Frequency Frequency `json:"frequency"`
}

// Service is a scheduled collection or other service as returned by the backend.
type Service struct {
	ID            int64  `json:"id"             validate:"required,gt=0"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
}

// RecurringAction is a state change verb understood by the backend for recurring schedules.
type RecurringAction string

const (
	RecurringPause        RecurringAction = "pause"
	RecurringResume       RecurringAction = "resume"
	RecurringGenerateNext RecurringAction = "generate_next_service"
)

// ParseRecurringAction validates an action path segment.
func ParseRecurringAction(s string) (RecurringAction, error) {
	switch a := RecurringAction(s); a {
	case RecurringPause, RecurringResume, RecurringGenerateNext:
		return a, nil
	}
	return "", ErrUnknownAction
}

// Resources lists the backend collections the dashboard reads through the gateway.
var Resources = map[string]struct{}{
	"clients":             {},
	"locations":           {},
	"wastes":              {},
	"waste-subcategories": {},
	"type-services":       {},
	"services":            {},
	"recurring-services":  {},
	"notifications":       {},
	"certificates":        {},
	"collector-users":     {},
	"service-logs":        {},
}

// ApprovableResources lists the collections that accept the approve verb.
var ApprovableResources = map[string]struct{}{
	"services":     {},
	"certificates": {},
}
