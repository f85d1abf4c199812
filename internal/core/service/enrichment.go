package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// AdminSource tells where the effective admin flag of an enriched session came from.
type AdminSource string

const (
	// AdminFromCookie: no lookup configured, or no row for the user.
	AdminFromCookie AdminSource = "cookie"
	// AdminFromStore: the relational row overwrote the claim.
	AdminFromStore AdminSource = "store"
	// AdminFallback: the lookup failed and the cookie claim was kept.
	AdminFallback AdminSource = "fallback"
)

// SessionEnricher overwrites the cookie's admin claim with the relational
// store's value when that store answers.
type SessionEnricher struct {
	lookup ports.AdminLookup
	log    zerolog.Logger
}

// NewSessionEnricher returns an enricher. A nil lookup disables enrichment.
func NewSessionEnricher(lookup ports.AdminLookup, log zerolog.Logger) *SessionEnricher {
	return &SessionEnricher{lookup: lookup, log: log}
}

// Enrich mutates claims in place and returns them. A failed lookup leaves the
// decoded claims untouched and is never surfaced as an error.
func (e *SessionEnricher) Enrich(ctx context.Context, claims *domain.Claims) (*domain.Claims, AdminSource) {
	if claims == nil || e == nil || e.lookup == nil {
		return claims, AdminFromCookie
	}

	isAdmin, found, err := e.lookup.IsAdmin(ctx, claims.ID)
	if err != nil {
		e.log.Warn().Err(err).Str("user_id", claims.ID).Msg("admin lookup failed, using cookie claims")
		return claims, AdminFallback
	}
	if !found {
		return claims, AdminFromCookie
	}

	claims.IsAdmin = &isAdmin
	return claims, AdminFromStore
}
