package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// ctxClaims returns the session claims placed by the Session middleware.
// Guarded routes never reach a handler anonymously, so a nil here means the
// route was registered without its guard; reject rather than serve it.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return claims, nil
}
