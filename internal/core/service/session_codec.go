package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// urlSafeReplacer maps the URL-safe base64 alphabet onto the standard one.
var urlSafeReplacer = strings.NewReplacer("-", "+", "_", "/")

// DecodeSession parses a session cookie value. Both standard and URL-safe
// base64 are accepted, with or without padding. Every failure wraps
// domain.ErrDecode; callers treat it as an anonymous request.
//
// The payload carries no signature. Claims are advisory.
func DecodeSession(value string) (*domain.Claims, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty value", domain.ErrDecode)
	}

	if strings.ContainsAny(value, "-_") {
		value = urlSafeReplacer.Replace(value)
	}
	if rem := len(value) % 4; rem != 0 {
		value += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", domain.ErrDecode, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not utf-8", domain.ErrDecode)
	}

	return parseSessionPayload(raw)
}

// sessionPayload mirrors domain.Claims with pointers on the fields that must
// be present even when their value is the zero value.
type sessionPayload struct {
	ID        string  `json:"id"`
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatarUrl"`
	IsOwner   *bool   `json:"isOwner"`
	IsAdmin   *bool   `json:"isAdmin"`
}

var sessionKeys = []string{"id", "login", "email", "name", "avatarUrl", "isOwner", "isAdmin"}

// parseSessionPayload decodes the JSON document. Keys are matched exactly:
// encoding/json folds case, so a key that differs from a known one only in
// case is rejected up front.
func parseSessionPayload(raw []byte) (*domain.Claims, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: json: %v", domain.ErrDecode, err)
	}
	for key := range fields {
		for _, known := range sessionKeys {
			if key != known && strings.EqualFold(key, known) {
				return nil, fmt.Errorf("%w: key %q does not match %q", domain.ErrDecode, key, known)
			}
		}
	}

	var p sessionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: json: %v", domain.ErrDecode, err)
	}
	switch {
	case p.ID == "" || p.Login == "":
		return nil, fmt.Errorf("%w: missing id or login", domain.ErrDecode)
	case p.Email == nil:
		return nil, fmt.Errorf("%w: missing email", domain.ErrDecode)
	case p.IsOwner == nil:
		return nil, fmt.Errorf("%w: missing isOwner", domain.ErrDecode)
	}

	return &domain.Claims{
		ID:        p.ID,
		Login:     p.Login,
		Email:     *p.Email,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		IsOwner:   *p.IsOwner,
		IsAdmin:   p.IsAdmin,
	}, nil
}

// EncodeSession renders claims as a URL-safe, unpadded base64 JSON document.
func EncodeSession(claims *domain.Claims) (string, error) {
	if claims == nil || claims.ID == "" || claims.Login == "" {
		return "", fmt.Errorf("encode session: %w: missing id or login", domain.ErrDecode)
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
