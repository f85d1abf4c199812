package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// LoginService issues session cookies for identities the upstream provider
// has already authenticated. isOwner is decided here, once, at issue time.
type LoginService struct {
	setup    ports.SetupLock
	enricher *SessionEnricher
	log      zerolog.Logger
}

func NewLoginService(setup ports.SetupLock, enricher *SessionEnricher, log zerolog.Logger) *LoginService {
	return &LoginService{setup: setup, enricher: enricher, log: log}
}

// Login completes setup when it is still open (the first login becomes the
// owner); otherwise the identity is the owner only if it matches the stored
// owner id.
func (s *LoginService) Login(ctx context.Context, identity domain.Identity) (string, *domain.Claims, error) {
	if identity.ID == "" || identity.Login == "" {
		return "", nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	open, err := s.setup.IsOpen(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	isOwner := false
	if open {
		err := s.setup.CompleteSetup(ctx, identity)
		switch {
		case err == nil:
			isOwner = true
		case errors.Is(err, domain.ErrSetupLocked):
			// Another login locked setup after our read; we are not the owner.
			s.log.Warn().Str("login", identity.Login).Msg("setup locked concurrently")
		default:
			return "", nil, fmt.Errorf("login: %w", err)
		}
	} else {
		ownerID, _, found, err := s.setup.Owner(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("login: %w", err)
		}
		isOwner = found && ownerID == identity.ID
	}

	claims := &domain.Claims{
		ID:        identity.ID,
		Login:     identity.Login,
		Email:     identity.Email,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		IsOwner:   isOwner,
	}
	claims, _ = s.enricher.Enrich(ctx, claims)

	cookie, err := EncodeSession(claims)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("login", identity.Login).Bool("owner", isOwner).Bool("admin", claims.Admin()).Msg("session issued")
	return cookie, claims, nil
}
