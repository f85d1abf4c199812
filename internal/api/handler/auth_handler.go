package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/metrics"
	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

const (
	stateCookieName = "oauth_state"
	callbackPath    = "/auth/callback"
)

// AuthDeps groups the collaborators of AuthHandler. Exchanger may be nil, in
// which case the callback answers 501.
type AuthDeps struct {
	Bootstrap ports.BootstrapService
	Login     ports.LoginService
	State     ports.StateService
	Exchanger ports.IdentityExchanger
	Cookies   middleware.Cookies
	PublicURL string
	StateTTL  time.Duration
}

type AuthHandler struct {
	deps AuthDeps
}

func NewAuthHandler(deps AuthDeps) *AuthHandler {
	if deps.StateTTL <= 0 {
		deps.StateTTL = 10 * time.Minute
	}
	return &AuthHandler{deps: deps}
}

type loginPageResponse struct {
	Reason        string         `json:"reason,omitempty"`
	Message       string         `json:"message,omitempty"`
	Configured    bool           `json:"configured"`
	Authenticated bool           `json:"authenticated"`
	User          *domain.Claims `json:"user,omitempty"`
}

// LoginPage describes the login screen, including why the visitor was sent
// here. Unknown reasons are echoed without a message.
//
// @Summary      Login page model
// @Tags         auth
// @Produce      json
// @Param        reason  query     string  false  "Why the visitor was redirected"
// @Success      200     {object}  loginPageResponse
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	resp := loginPageResponse{Reason: c.QueryParam("reason")}
	switch r := domain.Reason(resp.Reason); r {
	case domain.ReasonUnauthorized, domain.ReasonForbidden, domain.ReasonSetupLocked, domain.ReasonStoreUnavailable:
		resp.Message = middleware.ReasonMessage(r)
	}

	configured, err := h.deps.Bootstrap.IsConfigured(c.Request().Context())
	if err != nil {
		return err
	}
	resp.Configured = configured

	if claims := middleware.ClaimsFrom(c); claims != nil {
		resp.Authenticated = true
		resp.User = claims
	}
	return c.JSON(http.StatusOK, resp)
}

// Start redirects the browser to the provider's authorization page.
//
// @Summary      Begin OAuth login
// @Tags         auth
// @Success      302
// @Failure      404  {object}  map[string]string
// @Router       /auth/login [get]
func (h *AuthHandler) Start(c echo.Context) error {
	cfg, err := h.deps.Bootstrap.LoadOAuthConfig(c.Request().Context())
	if err != nil {
		return err
	}

	state, err := h.deps.State.Issue()
	if err != nil {
		return err
	}

	target, ok := cfg.AuthorizeURL(state, h.callbackURL())
	if !ok {
		return domain.ErrInvalidOAuthConfig
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     callbackPath,
		MaxAge:   int(h.deps.StateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.deps.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, target)
}

// Callback finishes the OAuth dance: verifies state, exchanges the code for
// an identity and issues the session cookie.
//
// @Summary      OAuth callback
// @Tags         auth
// @Param        code   query  string  true  "Authorization code"
// @Param        state  query  string  true  "Opaque state issued by /auth/login"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      501  {object}  map[string]string
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	if c.QueryParam("error") != "" {
		return c.Redirect(http.StatusFound, domain.PathLogin+"?reason="+string(domain.ReasonUnauthorized))
	}

	state := c.QueryParam("state")
	bound, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || bound.Value != state {
		return domain.ErrInvalidState
	}
	if err := h.deps.State.Verify(state); err != nil {
		return err
	}
	h.clearState(c)

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}
	if h.deps.Exchanger == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "identity exchange not configured")
	}

	ctx := c.Request().Context()
	cfg, err := h.deps.Bootstrap.LoadOAuthConfig(ctx)
	if err != nil {
		return err
	}

	identity, err := h.deps.Exchanger.Exchange(ctx, *cfg, code)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable").SetInternal(err)
	}

	cookie, claims, err := h.deps.Login.Login(ctx, *identity)
	if err != nil {
		return err
	}
	h.deps.Cookies.Set(c, cookie)

	role, target := "member", domain.PathLanding
	if claims.Owner() {
		role = "owner"
	}
	if claims.Owner() || claims.Admin() {
		target = domain.PathAdmin
	}
	metrics.LoginsTotal.WithLabelValues(role).Inc()

	return c.Redirect(http.StatusFound, target)
}

// Logout deletes the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.deps.Cookies.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) callbackURL() string {
	if h.deps.PublicURL == "" {
		return ""
	}
	return strings.TrimRight(h.deps.PublicURL, "/") + callbackPath
}

func (h *AuthHandler) clearState(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     callbackPath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.deps.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
