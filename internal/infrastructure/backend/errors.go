package backend

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// messageKeys are the envelope keys the API uses for a human-readable error.
var messageKeys = []string{"detail", "message", "error"}

// decodeError classifies an error response.
//
// A 400 whose body maps field names to a message or a list of messages is a
// validation error; anything else keeps the server message when there is one.
func decodeError(status int, body []byte) *domain.RemoteError {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return &domain.RemoteError{Kind: domain.KindHTTP, Status: status, Message: plainMessage(body)}
	}

	msg := firstMessage(obj)

	if status == http.StatusBadRequest {
		fields := obj
		if nested, ok := obj["errors"]; ok {
			var inner map[string]json.RawMessage
			if json.Unmarshal(nested, &inner) == nil {
				fields = inner
			}
		}
		if fe := fieldMessages(fields); len(fe) > 0 {
			return &domain.RemoteError{Kind: domain.KindValidation, Status: status, Message: msg, Fields: fe}
		}
	}

	return &domain.RemoteError{Kind: domain.KindHTTP, Status: status, Message: msg}
}

func firstMessage(obj map[string]json.RawMessage) string {
	for _, k := range messageKeys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func fieldMessages(obj map[string]json.RawMessage) map[string][]string {
	out := make(map[string][]string)
	for field, raw := range obj {
		if isMessageKey(field) || field == "errors" {
			continue
		}
		var one string
		if json.Unmarshal(raw, &one) == nil && one != "" {
			out[field] = []string{one}
			continue
		}
		var many []string
		if json.Unmarshal(raw, &many) == nil && len(many) > 0 {
			out[field] = many
		}
	}
	return out
}

func isMessageKey(k string) bool {
	for _, m := range messageKeys {
		if k == m {
			return true
		}
	}
	return false
}

// plainMessage keeps short plain-text bodies and drops HTML error pages.
func plainMessage(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" || strings.HasPrefix(s, "<") || len(s) > 200 {
		return ""
	}
	return s
}
