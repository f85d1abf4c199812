package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/api/metrics"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/service"
)

const claimsKey = "claims"

// Enricher merges decoded claims with authoritative server state.
type Enricher interface {
	Enrich(ctx context.Context, claims *domain.Claims) (*domain.Claims, service.AdminSource)
}

// Session decodes the session cookie, enriches the claims and stores them in
// the request context. It never rejects a request: a missing or malformed
// cookie leaves the request anonymous, and a malformed one is deleted.
func Session(enricher Enricher, cookies Cookies, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := service.DecodeSession(cookie.Value)
			if err != nil {
				metrics.SessionDecodeFailuresTotal.Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("dropping malformed session cookie")
				cookies.Clear(c)
				return next(c)
			}

			if enricher != nil {
				var src service.AdminSource
				claims, src = enricher.Enrich(c.Request().Context(), claims)
				metrics.SessionEnrichmentTotal.WithLabelValues(string(src)).Inc()
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the request's claims, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

// WithClaims stores claims on the context. Used by handlers after login and by tests.
func WithClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}
