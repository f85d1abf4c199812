package ports

import (
	"context"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// SetupLock is the single authoritative accessor for the setup state machine.
type SetupLock interface {
	IsOpen(ctx context.Context) (bool, error)
	CompleteSetup(ctx context.Context, owner domain.Identity) error
	Owner(ctx context.Context) (id, login string, found bool, err error)
}

// BootstrapService manages the identity-provider configuration written during setup.
type BootstrapService interface {
	SaveOAuthConfig(ctx context.Context, cfg domain.OAuthConfig) error
	LoadOAuthConfig(ctx context.Context) (*domain.OAuthConfig, error)
	IsConfigured(ctx context.Context) (bool, error)
}
