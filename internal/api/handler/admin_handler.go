package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// AdminHandler serves the signed-in surfaces: the caller's profile, the
// admin overview and the owner-only reset-route switch.
type AdminHandler struct {
	setup ports.SetupLock
	reset ports.ResetAuthority
}

func NewAdminHandler(setup ports.SetupLock, reset ports.ResetAuthority) *AdminHandler {
	return &AdminHandler{setup: setup, reset: reset}
}

type adminOverviewResponse struct {
	Viewer             *domain.Claims `json:"viewer"`
	SetupLocked        bool           `json:"setupLocked"`
	OwnerLogin         string         `json:"ownerLogin,omitempty"`
	ResetRouteDisabled bool           `json:"resetRouteDisabled"`
}

type resetRouteRequest struct {
	Disabled *bool `json:"disabled" validate:"required"`
}

type resetRouteResponse struct {
	Disabled bool `json:"disabled"`
}

// Profile returns the caller's effective claims.
//
// @Summary      Current user
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Claims
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *AdminHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Overview summarizes installation state for admins and the owner.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminOverviewResponse
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	open, err := h.setup.IsOpen(ctx)
	if err != nil {
		return err
	}
	_, ownerLogin, _, err := h.setup.Owner(ctx)
	if err != nil {
		return err
	}
	disabled, err := h.reset.IsDisabled(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminOverviewResponse{
		Viewer:             claims,
		SetupLocked:        !open,
		OwnerLogin:         ownerLogin,
		ResetRouteDisabled: disabled,
	})
}

// ResetRoute reports whether POST /reset is currently refused.
//
// @Summary      Reset route status
// @Tags         admin
// @Produce      json
// @Success      200  {object}  resetRouteResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/reset-route [get]
func (h *AdminHandler) ResetRoute(c echo.Context) error {
	disabled, err := h.reset.IsDisabled(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetRouteResponse{Disabled: disabled})
}

// SetResetRoute enables or disables POST /reset. Owner only.
//
// @Summary      Toggle reset route
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      resetRouteRequest  true  "Desired state"
// @Success      200   {object}  resetRouteResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /admin/reset-route [put]
func (h *AdminHandler) SetResetRoute(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req resetRouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.reset.SetDisabled(c.Request().Context(), claims, *req.Disabled); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetRouteResponse{Disabled: *req.Disabled})
}
