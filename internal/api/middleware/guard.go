package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/metrics"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/service"
)

// LockReader exposes the setup lock state for the policy.
type LockReader interface {
	State(ctx context.Context) domain.LockState
}

// ReasonMessage is the user-facing text for a decision reason.
func ReasonMessage(r domain.Reason) string {
	switch r {
	case domain.ReasonUnauthorized:
		return "authentication required"
	case domain.ReasonForbidden:
		return "you are signed in but lack the required role"
	case domain.ReasonSetupLocked:
		return "setup already completed"
	case domain.ReasonStoreUnavailable:
		return "configuration store unavailable"
	default:
		return http.StatusText(http.StatusForbidden)
	}
}

// Guard enforces the authorization policy for one resource class. The lock
// is only read for setup-only routes.
//
// Redirect decisions become a 302 for browser navigation and a JSON error
// with the decision's status for API clients and non-GET requests.
func Guard(class domain.ResourceClass, lock LockReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := domain.LockUnknown
			if class == domain.ResourceSetupOnly && lock != nil {
				state = lock.State(c.Request().Context())
			}

			d := service.Authorize(ClaimsFrom(c), class, state)
			metrics.AuthorizationDecisionsTotal.
				WithLabelValues(string(class), string(d.Outcome), string(d.Reason)).
				Inc()

			switch d.Outcome {
			case domain.OutcomeAllow:
				return next(c)
			case domain.OutcomeRedirect:
				if wantsJSON(c.Request()) {
					return echo.NewHTTPError(d.Status, ReasonMessage(d.Reason))
				}
				return c.Redirect(http.StatusFound, redirectURL(d))
			default:
				return echo.NewHTTPError(d.Status, ReasonMessage(d.Reason))
			}
		}
	}
}

func redirectURL(d domain.Decision) string {
	if d.Reason == domain.ReasonNone {
		return d.Target
	}
	return d.Target + "?" + url.Values{"reason": []string{string(d.Reason)}}.Encode()
}

func wantsJSON(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return true
	}
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
