package domain

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// RemoteErrorKind classifies failures of calls to the EcoTrash API.
type RemoteErrorKind string

const (
	// KindValidation is an HTTP 400 carrying a field → message(s) mapping.
	KindValidation RemoteErrorKind = "validation"
	// KindHTTP is any other error status.
	KindHTTP RemoteErrorKind = "http"
	// KindNetwork means no response was received.
	KindNetwork RemoteErrorKind = "network"
	// KindMalformed means a 2xx response did not match the expected shape.
	KindMalformed RemoteErrorKind = "malformed"
)

const NetworkErrorMessage = "could not reach server"

// RemoteError is returned by the backend client for every failed call.
type RemoteError struct {
	Kind    RemoteErrorKind
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %s", strings.Join(e.FieldNames(), ", "))
	case KindNetwork:
		if e.Err != nil {
			return NetworkErrorMessage + ": " + e.Err.Error()
		}
		return NetworkErrorMessage
	case KindMalformed:
		return "malformed response: " + e.Message
	default:
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// FieldNames returns the offending fields in stable order.
func (e *RemoteError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StatusFallback is the generic message shown when the server gives none.
func StatusFallback(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "the request is not valid"
	case http.StatusUnauthorized:
		return "your session has expired, please log in again"
	case http.StatusForbidden:
		return "you do not have permission to perform this action"
	case http.StatusNotFound:
		return "the requested resource was not found"
	case http.StatusConflict:
		return "the resource conflicts with existing data"
	case http.StatusTooManyRequests:
		return "too many requests, try again shortly"
	}
	if status >= 500 {
		return "the server failed to process the request, try again later"
	}
	return fmt.Sprintf("unexpected error (status %d)", status)
}

// NotificationLevel is the severity of a transient notification.
type NotificationLevel string

const (
	LevelError   NotificationLevel = "error"
	LevelWarning NotificationLevel = "warning"
)

// Notification is one transient message shown to the user.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Field   string            `json:"field,omitempty"`
	Message string            `json:"message"`
}
