package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// SetupHandler serves the first-run bootstrap surface. Every route is
// registered behind the setup-only guard, so handlers may assume setup was
// open when the request arrived.
type SetupHandler struct {
	bootstrap ports.BootstrapService
}

func NewSetupHandler(bootstrap ports.BootstrapService) *SetupHandler {
	return &SetupHandler{bootstrap: bootstrap}
}

type setupStatusResponse struct {
	Open       bool   `json:"open"`
	Configured bool   `json:"configured"`
	Provider   string `json:"provider"`
}

type oauthConfigRequest struct {
	Provider     string   `json:"provider" validate:"required,oneof=github"`
	ClientID     string   `json:"clientId" validate:"required"`
	ClientSecret string   `json:"clientSecret" validate:"required"`
	RedirectURI  string   `json:"redirectUri" validate:"omitempty,url"`
	Scopes       []string `json:"scopes"`
}

// Status reports whether the OAuth provider is configured yet.
//
// @Summary      Setup status
// @Tags         setup
// @Produce      json
// @Success      200  {object}  setupStatusResponse
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /setup [get]
func (h *SetupHandler) Status(c echo.Context) error {
	configured, err := h.bootstrap.IsConfigured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setupStatusResponse{
		Open:       true,
		Configured: configured,
		Provider:   domain.ProviderGitHub,
	})
}

// SaveOAuth stores the provider credentials used by the login flow.
//
// @Summary      Configure OAuth provider
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      oauthConfigRequest  true  "Provider credentials"
// @Success      200   {object}  setupStatusResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /setup/oauth [put]
func (h *SetupHandler) SaveOAuth(c echo.Context) error {
	var req oauthConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cfg := domain.OAuthConfig{
		Provider:     req.Provider,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		RedirectURI:  req.RedirectURI,
		Scopes:       req.Scopes,
	}
	if err := h.bootstrap.SaveOAuthConfig(c.Request().Context(), cfg); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, setupStatusResponse{Open: true, Configured: true, Provider: cfg.Provider})
}
