package ports

import (
	"context"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// ResetResult reports which keys a reset removed. InvalidateSession tells the
// caller to drop the current session cookie.
type ResetResult struct {
	Deleted           []string
	Failed            []string
	InvalidateSession bool
}

// ResetAuthority guards and performs the destructive reset.
type ResetAuthority interface {
	SetDisabled(ctx context.Context, by *domain.Claims, disabled bool) error
	IsDisabled(ctx context.Context) (bool, error)
	PerformReset(ctx context.Context, by *domain.Claims) (*ResetResult, error)
}
