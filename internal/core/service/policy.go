package service

import (
	"net/http"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// Authorize decides whether claims may reach a resource of the given class.
// It is pure: the same (claims, class, lock) always yields the same decision.
// lock is only consulted for domain.ResourceSetupOnly.
//
// Not-logged-in and logged-in-with-the-wrong-role are kept apart
// (ReasonUnauthorized vs ReasonForbidden) so the login page can say which one
// happened instead of re-prompting for credentials.
func Authorize(claims *domain.Claims, class domain.ResourceClass, lock domain.LockState) domain.Decision {
	switch class {
	case domain.ResourcePublic:
		return domain.Allow()

	case domain.ResourceAuthenticatedOnly:
		if claims == nil {
			return unauthorized()
		}
		return domain.Allow()

	case domain.ResourceOwnerOnly:
		if claims == nil {
			return unauthorized()
		}
		if !claims.IsOwner {
			return forbidden()
		}
		return domain.Allow()

	case domain.ResourceAdminOrOwner:
		if claims == nil {
			return unauthorized()
		}
		if !claims.IsOwner && !claims.Admin() {
			return forbidden()
		}
		return domain.Allow()

	case domain.ResourceSetupOnly:
		// The lock is global and checked before anything about the caller.
		switch lock {
		case domain.LockOpen:
			return domain.Allow()
		case domain.LockLocked:
			if claims != nil {
				return domain.Redirect(domain.PathAdmin, domain.ReasonSetupLocked, http.StatusForbidden)
			}
			return domain.Redirect(domain.PathLanding, domain.ReasonSetupLocked, http.StatusForbidden)
		default:
			return domain.Deny(http.StatusInternalServerError, domain.ReasonStoreUnavailable)
		}
	}

	// Unknown classes fail closed.
	return domain.Deny(http.StatusForbidden, domain.ReasonForbidden)
}

func unauthorized() domain.Decision {
	return domain.Redirect(domain.PathLogin, domain.ReasonUnauthorized, http.StatusUnauthorized)
}

func forbidden() domain.Decision {
	return domain.Redirect(domain.PathLogin, domain.ReasonForbidden, http.StatusForbidden)
}
