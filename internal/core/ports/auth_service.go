package ports

import (
	"context"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// IdentityExchanger performs the upstream OAuth code exchange. It is an
// external collaborator; this service only consumes the resulting identity.
type IdentityExchanger interface {
	Exchange(ctx context.Context, cfg domain.OAuthConfig, code string) (*domain.Identity, error)
}

// LoginService turns an authenticated identity into a session cookie value.
type LoginService interface {
	Login(ctx context.Context, identity domain.Identity) (cookie string, claims *domain.Claims, err error)
}

// StateService issues and verifies the OAuth state parameter.
type StateService interface {
	Issue() (string, error)
	Verify(state string) error
}
