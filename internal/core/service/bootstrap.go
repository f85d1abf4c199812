package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// BootstrapService stores the identity-provider configuration written during
// setup and read by every login attempt.
type BootstrapService struct {
	store ports.ConfigStore
	setup ports.SetupLock
	log   zerolog.Logger
}

func NewBootstrapService(store ports.ConfigStore, setup ports.SetupLock, log zerolog.Logger) *BootstrapService {
	return &BootstrapService{store: store, setup: setup, log: log}
}

// SaveOAuthConfig persists cfg. It is only allowed while setup is open.
func (s *BootstrapService) SaveOAuthConfig(ctx context.Context, cfg domain.OAuthConfig) error {
	if cfg.Provider != domain.ProviderGitHub {
		return fmt.Errorf("%w: unsupported provider %q", domain.ErrInvalidOAuthConfig, cfg.Provider)
	}
	if cfg.ClientID == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrInvalidOAuthConfig)
	}

	open, err := s.setup.IsOpen(ctx)
	if err != nil {
		return fmt.Errorf("save oauth config: %w", err)
	}
	if !open {
		return fmt.Errorf("save oauth config: %w", domain.ErrSetupLocked)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save oauth config: %w", err)
	}
	if err := s.store.Put(ctx, cfg.StorageKey(), string(raw)); err != nil {
		return fmt.Errorf("save oauth config: %w", err)
	}

	s.log.Info().Str("provider", cfg.Provider).Str("client_id", cfg.ClientID).Msg("oauth config saved")
	return nil
}

// LoadOAuthConfig returns the stored configuration or domain.ErrNotConfigured.
func (s *BootstrapService) LoadOAuthConfig(ctx context.Context) (*domain.OAuthConfig, error) {
	raw, found, err := s.store.Get(ctx, domain.KeyOAuthConfigGitHub)
	if err != nil {
		return nil, fmt.Errorf("load oauth config: %w", err)
	}
	if !found {
		return nil, domain.ErrNotConfigured
	}

	var cfg domain.OAuthConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.log.Error().Err(err).Msg("stored oauth config is not valid json")
		return nil, fmt.Errorf("load oauth config: %w", domain.ErrNotConfigured)
	}
	return &cfg, nil
}

func (s *BootstrapService) IsConfigured(ctx context.Context) (bool, error) {
	_, found, err := s.store.Get(ctx, domain.KeyOAuthConfigGitHub)
	if err != nil {
		return false, fmt.Errorf("read oauth config: %w", err)
	}
	return found, nil
}
