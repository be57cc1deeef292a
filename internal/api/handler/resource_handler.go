package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// ResourceHandler passes the dashboard list and detail views through to the
// EcoTrash API with the session token attached.
type ResourceHandler struct {
	api      ports.ResourceAPI
	services ports.ServiceAPI
}

func NewResourceHandler(api ports.ResourceAPI, services ports.ServiceAPI) *ResourceHandler {
	return &ResourceHandler{api: api, services: services}
}

// List handles GET /api/:resource.
//
// @Summary      List a backend collection
// @Tags         resources
// @Produce      json
// @Param        resource  path      string  true  "Collection name (clients, services, ...)"
// @Success      200       {object}  object
// @Failure      404       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /api/{resource} [get]
func (h *ResourceHandler) List(c echo.Context) error {
	query := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	raw, err := h.api.List(c.Request().Context(), c.Param("resource"), query)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Get handles GET /api/:resource/:id.
//
// @Summary      Get one item of a backend collection
// @Tags         resources
// @Produce      json
// @Param        resource  path      string  true  "Collection name"
// @Param        id        path      int     true  "Item ID"
// @Success      200       {object}  object
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/{resource}/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	raw, err := h.api.Get(c.Request().Context(), c.Param("resource"), id)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Approve handles POST /api/:resource/:id/approve for services and certificates.
//
// @Summary      Approve a service or certificate
// @Tags         resources
// @Produce      json
// @Param        resource  path      string  true  "services or certificates"
// @Param        id        path      int     true  "Item ID"
// @Success      200       {object}  approveResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/{resource}/{id}/approve [post]
func (h *ResourceHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	resource := c.Param("resource")
	raw, err := h.api.Approve(c.Request().Context(), resource, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveResponse{
		Result: raw,
		Links:  resourceLinks{Self: fmt.Sprintf("/api/%s/%d", resource, id)},
	})
}

// RecurringAction handles POST /api/recurring-services/:id/:action.
//
// @Summary      Pause, resume or generate the next service of a recurring schedule
// @Tags         resources
// @Produce      json
// @Param        id      path      int     true  "Recurring service ID"
// @Param        action  path      string  true  "pause, resume or generate_next_service"
// @Success      200     {object}  approveResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/recurring-services/{id}/{action} [post]
func (h *ResourceHandler) RecurringAction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	action, err := domain.ParseRecurringAction(c.Param("action"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown action %q", c.Param("action"))})
	}

	raw, err := h.services.RecurringAction(c.Request().Context(), id, action)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveResponse{
		Result: json.RawMessage(raw),
		Links:  resourceLinks{Self: fmt.Sprintf("/api/recurring-services/%d", id)},
	})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
