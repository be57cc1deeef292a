package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error         string                `json:"error"`
	Notifications []domain.Notification `json:"notifications,omitempty"`
}

// flexID accepts an ID sent as a JSON number, a numeric string, "" or null.
// HTML selects post strings, scripted clients post numbers.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid id %s", b)
	}
	*f = flexID(n)
	return nil
}

// flexValue is a raw control value; numbers are kept in their textual form.
type flexValue string

func (v *flexValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("value must be a string or a number")
	}
	*v = flexValue(n.String())
	return nil
}

// --- Form request / response types ---

type selectionRequest struct {
	Client        flexID           `json:"client"`
	Location      flexID           `json:"location"`
	TypeService   flexID           `json:"type_service"`
	Waste         flexID           `json:"waste"`
	Subcategory   flexID           `json:"waste_subcategory"`
	ScheduledDate string           `json:"scheduled_date"`
	Frequency     domain.Frequency `json:"frequency"`
	Notes         string           `json:"notes"`
}

func (s selectionRequest) toSelection() form.Selection {
	return form.Selection{
		Client:        int64(s.Client),
		Location:      int64(s.Location),
		TypeService:   int64(s.TypeService),
		Waste:         int64(s.Waste),
		Subcategory:   int64(s.Subcategory),
		ScheduledDate: s.ScheduledDate,
		Frequency:     s.Frequency,
		Notes:         s.Notes,
	}
}

type resolveRequest struct {
	Selection selectionRequest `json:"selection"`
	Field     string           `json:"field"`
	Value     flexValue        `json:"value"`
}

type formResponse struct {
	State  form.State `json:"state"`
	Notice string     `json:"notice,omitempty"`
}

type submitResponse struct {
	Service  *domain.Service `json:"service"`
	Redirect string          `json:"redirect"`
}

// --- Resource request / response types ---

type resourceLinks struct {
	Self string `json:"self"`
}

type approveResponse struct {
	Result json.RawMessage `json:"result"`
	Links  resourceLinks   `json:"_links"`
}
