package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode marks a malformed session cookie. Callers treat it as "no session".
	ErrDecode = errors.New("invalid session cookie")
	// ErrStoreUnavailable wraps any failure talking to the key-value or relational store.
	ErrStoreUnavailable = errors.New("configuration store unavailable")
	ErrUnauthorized     = errors.New("authentication required")
	ErrForbidden        = errors.New("access forbidden")
	ErrSetupLocked      = errors.New("setup already completed")
	ErrNotConfigured    = errors.New("identity provider not configured")
	ErrInvalidState     = errors.New("invalid oauth state")

	ErrInvalidOAuthConfig = errors.New("invalid oauth configuration")
)

// ErrResetDisabled is returned when the reset route has been switched off by
// the owner. It matches ErrForbidden with errors.Is.
var ErrResetDisabled = fmt.Errorf("reset route disabled: %w", ErrForbidden)

// StoreError wraps err so that errors.Is(err, ErrStoreUnavailable) holds while
// keeping the underlying cause.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
