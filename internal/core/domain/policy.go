package domain

import "net/http"

// ResourceClass groups routes that share an authorization rule.
type ResourceClass string

const (
	ResourcePublic            ResourceClass = "public"
	ResourceAuthenticatedOnly ResourceClass = "authenticated"
	ResourceOwnerOnly         ResourceClass = "owner"
	ResourceAdminOrOwner      ResourceClass = "admin_or_owner"
	ResourceSetupOnly         ResourceClass = "setup"
)

// LockState is the setup lock as observed for a single request.
type LockState int

const (
	LockOpen LockState = iota
	LockLocked
	// LockUnknown means the store could not be read.
	LockUnknown
)

func (s LockState) String() string {
	switch s {
	case LockOpen:
		return "open"
	case LockLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Outcome is the kind of decision emitted to the routing layer.
type Outcome string

const (
	OutcomeAllow    Outcome = "allow"
	OutcomeRedirect Outcome = "redirect"
	OutcomeDeny     Outcome = "deny"
)

// Reason distinguishes why a request was not allowed.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnauthorized     Reason = "unauthorized"
	ReasonForbidden        Reason = "forbidden"
	ReasonSetupLocked      Reason = "setup_locked"
	ReasonStoreUnavailable Reason = "store_unavailable"
)

// Well-known redirect targets.
const (
	PathLanding = "/"
	PathLogin   = "/login"
	PathAdmin   = "/admin"
	PathSetup   = "/setup"
	PathProfile = "/profile"
)

// Decision is the result of an authorization check. Status is the HTTP code an
// API client should see when the decision is not rendered as a redirect.
type Decision struct {
	Outcome Outcome
	Target  string
	Reason  Reason
	Status  int
}

func Allow() Decision {
	return Decision{Outcome: OutcomeAllow, Status: http.StatusOK}
}

func Redirect(target string, reason Reason, status int) Decision {
	return Decision{Outcome: OutcomeRedirect, Target: target, Reason: reason, Status: status}
}

func Deny(status int, reason Reason) Decision {
	return Decision{Outcome: OutcomeDeny, Reason: reason, Status: status}
}

// Allowed is a convenience for callers that only care about pass/fail.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}
