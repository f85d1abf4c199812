package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// LandingHandler serves the public root. Guards send visitors here when a
// setup route is locked, so it must answer anonymous callers.
type LandingHandler struct {
	setup ports.SetupLock
}

func NewLandingHandler(setup ports.SetupLock) *LandingHandler {
	return &LandingHandler{setup: setup}
}

type landingResponse struct {
	Reason        string         `json:"reason,omitempty"`
	Message       string         `json:"message,omitempty"`
	SetupOpen     bool           `json:"setupOpen"`
	Authenticated bool           `json:"authenticated"`
	User          *domain.Claims `json:"user,omitempty"`
	Next          string         `json:"next"`
}

// Landing reports the installation state and where the caller should go next.
//
// @Summary      Landing page model
// @Tags         auth
// @Produce      json
// @Success      200     {object}  landingResponse
// @Failure      500     {object}  map[string]string
// @Router       / [get]
func (h *LandingHandler) Landing(c echo.Context) error {
	open, err := h.setup.IsOpen(c.Request().Context())
	if err != nil {
		return err
	}

	resp := landingResponse{Reason: c.QueryParam("reason"), SetupOpen: open}
	switch r := domain.Reason(resp.Reason); r {
	case domain.ReasonUnauthorized, domain.ReasonForbidden, domain.ReasonSetupLocked, domain.ReasonStoreUnavailable:
		resp.Message = middleware.ReasonMessage(r)
	}

	claims := middleware.ClaimsFrom(c)
	switch {
	case open:
		resp.Next = domain.PathSetup
	case claims == nil:
		resp.Next = domain.PathLogin
	case claims.IsOwner || claims.Admin():
		resp.Next = domain.PathAdmin
	default:
		resp.Next = domain.PathProfile
	}
	if claims != nil {
		resp.Authenticated = true
		resp.User = claims
	}
	return c.JSON(http.StatusOK, resp)
}
