package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
)

func handle(t *testing.T, method string, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	NewHTTPErrorHandler(zerolog.Nop())(err, e.NewContext(req, rec))

	var resp errorResponse
	if rec.Body.Len() > 0 {
		if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
			t.Fatalf("invalid json: %v", jerr)
		}
	}
	return rec, resp
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"field errors", form.FieldErrors{"waste": "waste is required"}, http.StatusUnprocessableEntity},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unverified", domain.ErrUnverifiedAccount, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unknown resource", fmt.Errorf("list: %w", domain.ErrUnknownResource), http.StatusNotFound},
		{"unknown variant", form.ErrUnknownVariant, http.StatusNotFound},
		{"unknown field", form.ErrUnknownField, http.StatusBadRequest},
		{"in flight", form.ErrSubmitInProgress, http.StatusConflict},
		{"backend validation", &domain.RemoteError{Kind: domain.KindValidation, Status: 400, Fields: map[string][]string{"location": {"Invalid pk."}}}, http.StatusBadRequest},
		{"backend 404", &domain.RemoteError{Kind: domain.KindHTTP, Status: http.StatusNotFound}, http.StatusNotFound},
		{"backend 500", &domain.RemoteError{Kind: domain.KindHTTP, Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{"network", &domain.RemoteError{Kind: domain.KindNetwork, Err: errors.New("refused")}, http.StatusBadGateway},
		{"malformed", &domain.RemoteError{Kind: domain.KindMalformed, Err: errors.New("eof")}, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec, resp := handle(t, http.MethodGet, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
		if resp.Error == "" {
			t.Fatalf("%s: expected an error message", tc.name)
		}
	}
}

func TestHTTPErrorHandler_NotificationsForBackendErrors(t *testing.T) {
	_, resp := handle(t, http.MethodPost, &domain.RemoteError{
		Kind:    domain.KindHTTP,
		Status:  http.StatusConflict,
		Message: "already scheduled",
	})
	if resp.Error != "already scheduled" || len(resp.Notifications) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	_, resp = handle(t, http.MethodPost, form.FieldErrors{"client": "client is required", "location": "location is required"})
	if len(resp.Notifications) != 2 || resp.Notifications[0].Field != "client" {
		t.Fatalf("expected one notification per field, got %+v", resp.Notifications)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorsStayInternal(t *testing.T) {
	_, resp := handle(t, http.MethodGet, errors.New("dial redis: secret-host:6379"))
	if resp.Error != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error)
	}
}

func TestHTTPErrorHandler_HeadAndCancelled(t *testing.T) {
	rec, _ := handle(t, http.MethodHead, domain.ErrForbidden)
	if rec.Code != http.StatusForbidden || rec.Body.Len() != 0 {
		t.Fatalf("expected bare 403 for HEAD, got %d %q", rec.Code, rec.Body.String())
	}

	rec, _ = handle(t, http.MethodGet, fmt.Errorf("load: %w", context.Canceled))
	if rec.Body.Len() != 0 {
		t.Fatalf("expected no response for an abandoned request, got %q", rec.Body.String())
	}
}
