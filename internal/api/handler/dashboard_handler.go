package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
)

// DashboardHandler serves the role home pages.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type homeResponse struct {
	Role  domain.Role    `json:"role"`
	User  *sessionView   `json:"user"`
	Forms []form.Variant `json:"forms"`
}

// Root sends an authenticated user to their role home.
func (h *DashboardHandler) Root(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, s.Role.Home())
}

// Home handles GET /admin, /management, /client and /collector.
//
// @Summary      Role home
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  homeResponse
// @Failure      403  {object}  errorResponse
// @Router       /{role} [get]
func (h *DashboardHandler) Home(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	var forms []form.Variant
	for _, v := range []form.Variant{form.VariantAdmin, form.VariantManagement, form.VariantClient, form.VariantRecurring} {
		if v.AllowedFor(s.Role) {
			forms = append(forms, v)
		}
	}
	return c.JSON(http.StatusOK, homeResponse{Role: s.Role, User: newSessionView(s), Forms: forms})
}
