package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

const stateIssuer = "gatekeeper"

// StateIssuer signs the OAuth state parameter so the callback can tell a
// round-trip it started from a forged one. It does not touch the session
// cookie.
type StateIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateIssuer(secret string, ttl time.Duration) *StateIssuer {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StateIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a fresh HS256 state token carrying a random nonce.
func (s *StateIssuer) Issue() (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("issue state: empty secret")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    stateIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry. Failures wrap domain.ErrInvalidState.
func (s *StateIssuer) Verify(state string) error {
	if state == "" {
		return fmt.Errorf("%w: missing", domain.ErrInvalidState)
	}
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(stateIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	return nil
}
