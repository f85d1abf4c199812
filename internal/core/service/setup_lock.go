package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// SetupLock owns the one-way OPEN → LOCKED transition and the owner identity.
//
// CompleteSetup performs no compare-and-swap: two first logins racing while
// OPEN can both write, and the last write wins.
type SetupLock struct {
	store ports.ConfigStore
	log   zerolog.Logger
}

func NewSetupLock(store ports.ConfigStore, log zerolog.Logger) *SetupLock {
	return &SetupLock{store: store, log: log}
}

// IsOpen reports whether setup is still open. Store failures are returned as
// is; each endpoint decides how to treat them.
func (l *SetupLock) IsOpen(ctx context.Context) (bool, error) {
	_, locked, err := l.store.Get(ctx, domain.KeySetupCompleted)
	if err != nil {
		return false, fmt.Errorf("read setup lock: %w", err)
	}
	return !locked, nil
}

// State maps IsOpen onto a domain.LockState for the authorization policy.
func (l *SetupLock) State(ctx context.Context) domain.LockState {
	open, err := l.IsOpen(ctx)
	switch {
	case err != nil:
		l.log.Error().Err(err).Msg("setup lock unreadable")
		return domain.LockUnknown
	case open:
		return domain.LockOpen
	default:
		return domain.LockLocked
	}
}

// Owner returns the stored owner identity. found is false unless both keys exist.
func (l *SetupLock) Owner(ctx context.Context) (id, login string, found bool, err error) {
	id, idFound, err := l.store.Get(ctx, domain.KeyOwnerID)
	if err != nil {
		return "", "", false, fmt.Errorf("read owner id: %w", err)
	}
	login, loginFound, err := l.store.Get(ctx, domain.KeyOwnerLogin)
	if err != nil {
		return "", "", false, fmt.Errorf("read owner login: %w", err)
	}
	if !idFound || !loginFound {
		return "", "", false, nil
	}
	return id, login, true, nil
}

// CompleteSetup records owner as the single owner and locks setup. Owner keys
// are written before the lock flag, so a failure in between leaves the system
// OPEN with a half-written owner rather than LOCKED without one.
//
// Once LOCKED, a call for the stored owner is a no-op and any other identity
// gets domain.ErrSetupLocked.
func (l *SetupLock) CompleteSetup(ctx context.Context, owner domain.Identity) error {
	if owner.ID == "" || owner.Login == "" {
		return fmt.Errorf("complete setup: %w: owner id and login are required", domain.ErrUnauthorized)
	}

	open, err := l.IsOpen(ctx)
	if err != nil {
		return fmt.Errorf("complete setup: %w", err)
	}
	if !open {
		id, _, found, err := l.Owner(ctx)
		if err != nil {
			return fmt.Errorf("complete setup: %w", err)
		}
		if found && id == owner.ID {
			return nil
		}
		return fmt.Errorf("complete setup: %w", domain.ErrSetupLocked)
	}

	if err := l.store.Put(ctx, domain.KeyOwnerID, owner.ID); err != nil {
		return fmt.Errorf("complete setup: write owner id: %w", err)
	}
	if err := l.store.Put(ctx, domain.KeyOwnerLogin, owner.Login); err != nil {
		return fmt.Errorf("complete setup: write owner login: %w", err)
	}
	if err := l.store.Put(ctx, domain.KeySetupCompleted, domain.FlagTrue); err != nil {
		return fmt.Errorf("complete setup: write lock flag: %w", err)
	}

	l.log.Info().Str("owner_id", owner.ID).Str("owner_login", owner.Login).Msg("setup completed, owner recorded")
	return nil
}
