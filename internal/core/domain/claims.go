package domain

// Claims is the identity carried inside the session cookie. The cookie is not
// signed, so every field is advisory; only IsAdmin is re-derived per request.
type Claims struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	IsOwner   bool   `json:"isOwner"`
	IsAdmin   *bool  `json:"isAdmin,omitempty"`
}

// Admin reports the effective admin flag; an absent claim counts as false.
func (c *Claims) Admin() bool {
	return c != nil && c.IsAdmin != nil && *c.IsAdmin
}

// Owner is nil-safe.
func (c *Claims) Owner() bool {
	return c != nil && c.IsOwner
}

// Identity is the authenticated user as reported by the upstream identity
// provider after a successful token exchange.
type Identity struct {
	ID        string
	Login     string
	Email     string
	Name      string
	AvatarURL string
}
