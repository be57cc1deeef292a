package service

import (
	"errors"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
)

// Notifications converts an error into the transient messages shown to the user.
//
//	validation (400 + field map) → one notification per field message
//	other HTTP status             → server message, or the per-status fallback
//	no response                   → "could not reach server"
//	local form errors             → one per offending field
func Notifications(err error) []domain.Notification {
	if err == nil {
		return nil
	}

	var fe form.FieldErrors
	if errors.As(err, &fe) {
		out := make([]domain.Notification, 0, len(fe))
		for _, f := range fe.Fields() {
			out = append(out, domain.Notification{Level: domain.LevelWarning, Field: f, Message: fe[f]})
		}
		return out
	}

	var re *domain.RemoteError
	if !errors.As(err, &re) {
		return []domain.Notification{{Level: domain.LevelError, Message: err.Error()}}
	}

	switch re.Kind {
	case domain.KindValidation:
		var out []domain.Notification
		for _, f := range re.FieldNames() {
			for _, msg := range re.Fields[f] {
				out = append(out, domain.Notification{Level: domain.LevelError, Field: f, Message: msg})
			}
		}
		if len(out) == 0 {
			out = append(out, domain.Notification{Level: domain.LevelError, Message: domain.StatusFallback(re.Status)})
		}
		return out
	case domain.KindNetwork:
		return []domain.Notification{{Level: domain.LevelError, Message: domain.NetworkErrorMessage}}
	case domain.KindMalformed:
		return []domain.Notification{{Level: domain.LevelError, Message: "the server returned an unexpected response"}}
	default:
		msg := re.Message
		if msg == "" {
			msg = domain.StatusFallback(re.Status)
		}
		return []domain.Notification{{Level: domain.LevelError, Message: msg}}
	}
}
