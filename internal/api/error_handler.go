package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error         string                `json:"error"`
	Notifications []domain.Notification `json:"notifications,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and form errors to their HTTP status codes.
//   - Turns EcoTrash API failures into the notifications the view shows.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "notifications": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		// The client navigated away; nobody is left to read a response.
		if errors.Is(err, context.Canceled) {
			log.Debug().Str("path", c.Path()).Msg("request abandoned")
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Local form validation: inline field errors.
	var fe form.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:         "the form has errors",
			Notifications: service.Notifications(fe),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUnverifiedAccount):
		return http.StatusForbidden, errorResponse{Error: domain.ErrUnverifiedAccount.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUnknownResource), errors.Is(err, form.ErrUnknownVariant):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnknownAction), errors.Is(err, form.ErrUnknownField):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, form.ErrSubmitInProgress):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	}

	// EcoTrash API failures.
	var re *domain.RemoteError
	if errors.As(err, &re) {
		notes := service.Notifications(re)
		resp := errorResponse{Error: notes[0].Message, Notifications: notes}
		switch re.Kind {
		case domain.KindValidation:
			resp.Error = "the server rejected the request"
			return http.StatusBadRequest, resp
		case domain.KindHTTP:
			if re.Status >= 400 && re.Status < 500 {
				return re.Status, resp
			}
			return http.StatusBadGateway, resp
		case domain.KindNetwork:
			return http.StatusBadGateway, resp
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("malformed backend response")
			return http.StatusBadGateway, resp
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
