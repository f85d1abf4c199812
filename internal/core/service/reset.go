package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// ResetAuthority controls whether the destructive reset may run and runs it.
//
// PerformReset does not require a session: the disable flag is its only gate.
// The flag itself can only be changed by the owner.
type ResetAuthority struct {
	store ports.ConfigStore
	log   zerolog.Logger
}

func NewResetAuthority(store ports.ConfigStore, log zerolog.Logger) *ResetAuthority {
	return &ResetAuthority{store: store, log: log}
}

// IsDisabled reports whether the reset route is switched off. Only the literal
// "true" counts.
func (r *ResetAuthority) IsDisabled(ctx context.Context) (bool, error) {
	v, found, err := r.store.Get(ctx, domain.KeyResetDisabled)
	if err != nil {
		return false, fmt.Errorf("read reset flag: %w", err)
	}
	return found && v == domain.FlagTrue, nil
}

// SetDisabled switches the reset route off (true) or on (false). Only the
// owner may do this.
func (r *ResetAuthority) SetDisabled(ctx context.Context, by *domain.Claims, disabled bool) error {
	if !by.Owner() {
		login := ""
		if by != nil {
			login = by.Login
		}
		r.log.Warn().Str("login", login).Bool("disabled", disabled).Msg("non-owner attempted to change reset route flag")
		return fmt.Errorf("set reset flag: %w", domain.ErrForbidden)
	}

	var err error
	if disabled {
		err = r.store.Put(ctx, domain.KeyResetDisabled, domain.FlagTrue)
	} else {
		err = r.store.Delete(ctx, domain.KeyResetDisabled)
	}
	if err != nil {
		return fmt.Errorf("set reset flag: %w", err)
	}

	r.log.Info().Str("login", by.Login).Bool("disabled", disabled).Msg("reset route flag changed")
	return nil
}

// PerformReset deletes the bootstrap state and returns the system to setup.
// Deletions are independent: a failed key is logged and the rest are still
// attempted. Any failure is returned (wrapping domain.ErrStoreUnavailable)
// together with the partial result.
func (r *ResetAuthority) PerformReset(ctx context.Context, by *domain.Claims) (*ports.ResetResult, error) {
	actor := "anonymous"
	if by != nil {
		actor = by.Login
	}

	disabled, err := r.IsDisabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("perform reset: %w", err)
	}
	if disabled {
		r.log.Warn().Str("actor", actor).Msg("reset refused, route disabled")
		return nil, domain.ErrResetDisabled
	}

	res := &ports.ResetResult{}
	var errs []error
	for _, key := range domain.ResetKeys {
		if err := r.store.Delete(ctx, key); err != nil {
			r.log.Error().Err(err).Str("key", key).Msg("reset: failed to delete key")
			res.Failed = append(res.Failed, key)
			errs = append(errs, err)
			continue
		}
		res.Deleted = append(res.Deleted, key)
	}
	res.InvalidateSession = true

	if len(errs) > 0 {
		return res, fmt.Errorf("perform reset: %w", errors.Join(errs...))
	}

	r.log.Info().Str("actor", actor).Msg("system reset, setup reopened")
	return res, nil
}
