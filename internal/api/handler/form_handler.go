package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/pkg/metrics"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

type referenceLoader interface {
	Load(ctx context.Context) (form.References, error)
}

// FormHandler serves the "create service" forms. Every request rebuilds the
// resolver from the posted selection, so the gateway holds no form state
// besides the per-variant submission guard.
type FormHandler struct {
	refs       referenceLoader
	submitters map[form.Variant]*form.Submitter
}

func NewFormHandler(refs referenceLoader, api ports.ServiceAPI) *FormHandler {
	h := &FormHandler{refs: refs, submitters: make(map[form.Variant]*form.Submitter)}
	for _, v := range []form.Variant{form.VariantAdmin, form.VariantManagement, form.VariantClient, form.VariantRecurring} {
		h.submitters[v] = form.NewSubmitter(api)
	}
	return h
}

// open checks access to the variant and builds a resolver over freshly
// loaded references.
func (h *FormHandler) open(c echo.Context) (*form.Resolver, domain.Session, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, s, err
	}
	v, err := form.ParseVariant(c.Param("variant"))
	if err != nil {
		return nil, s, err
	}
	if !v.AllowedFor(s.Role) {
		return nil, s, domain.ErrForbidden
	}

	refs, err := h.refs.Load(c.Request().Context())
	if err != nil {
		return nil, s, err
	}
	return form.NewResolver(form.ConfigFor(v, s), refs), s, nil
}

// Get handles GET /forms/:variant.
//
// @Summary      Initial state of a service form
// @Tags         forms
// @Produce      json
// @Param        variant  path      string  true  "admin, management, client or recurring"
// @Success      200      {object}  formResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /forms/{variant} [get]
func (h *FormHandler) Get(c echo.Context) error {
	r, _, err := h.open(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, formResponse{State: r.State()})
}

// Resolve handles POST /forms/:variant/resolve. The posted selection is
// replayed through the rules, then the changed field is applied. A rejected
// change keeps the previous selection and is reported as a notice.
//
// @Summary      Apply a field change to a service form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        variant  path      string          true  "admin, management, client or recurring"
// @Param        body     body      resolveRequest  true  "Current selection and the changed field"
// @Success      200      {object}  formResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /forms/{variant}/resolve [post]
func (h *FormHandler) Resolve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	r, _, err := h.open(c)
	if err != nil {
		return err
	}
	r.Restore(req.Selection.toSelection())

	resp := formResponse{}
	if req.Field != "" {
		if err := r.Apply(form.Field(req.Field), string(req.Value)); err != nil {
			if errors.Is(err, form.ErrUnknownField) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			}
			resp.Notice = err.Error()
		}
	}
	resp.State = r.State()
	return c.JSON(http.StatusOK, resp)
}

// Submit handles POST /forms/:variant/submit.
//
// @Summary      Submit a service form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        variant  path      string            true  "admin, management, client or recurring"
// @Param        body     body      selectionRequest  true  "Form selection"
// @Success      201      {object}  submitResponse
// @Failure      400      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /forms/{variant}/submit [post]
func (h *FormHandler) Submit(c echo.Context) error {
	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	r, s, err := h.open(c)
	if err != nil {
		return err
	}
	r.Restore(req.toSelection())

	variant := r.Config().Variant
	svc, err := h.submitters[variant].Submit(c.Request().Context(), r)
	if err != nil {
		var fe form.FieldErrors
		switch {
		case errors.As(err, &fe):
			metrics.FormSubmissionsTotal.WithLabelValues(string(variant), "rejected").Inc()
		case errors.Is(err, form.ErrSubmitInProgress):
		default:
			metrics.FormSubmissionsTotal.WithLabelValues(string(variant), "failed").Inc()
		}
		return err
	}

	metrics.FormSubmissionsTotal.WithLabelValues(string(variant), "created").Inc()
	return c.JSON(http.StatusCreated, submitResponse{Service: svc, Redirect: listPath(s.Role, variant)})
}

func listPath(role domain.Role, v form.Variant) string {
	if v == form.VariantRecurring {
		return role.Home() + "/recurring-services"
	}
	return role.Home() + "/services"
}
