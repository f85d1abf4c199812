package domain

import (
	"net/url"
	"strings"
)

const ProviderGitHub = "github"

// OAuthConfig is the bootstrap identity-provider configuration recorded
// during setup and read by every login attempt.
type OAuthConfig struct {
	Provider     string   `json:"provider"`
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret,omitempty"`
	RedirectURI  string   `json:"redirectUri,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
}

// StorageKey returns the namespaced key the config is persisted under.
func (c OAuthConfig) StorageKey() string {
	return KeyOAuthConfigPrefix + c.Provider
}

var authorizeEndpoints = map[string]string{
	ProviderGitHub: "https://github.com/login/oauth/authorize",
}

// AuthorizeURL builds the provider's authorization URL. redirectURI is used
// when the config does not pin one.
func (c OAuthConfig) AuthorizeURL(state, redirectURI string) (string, bool) {
	endpoint, ok := authorizeEndpoints[c.Provider]
	if !ok {
		return "", false
	}
	if c.RedirectURI != "" {
		redirectURI = c.RedirectURI
	}
	q := url.Values{}
	q.Set("client_id", c.ClientID)
	q.Set("state", state)
	if redirectURI != "" {
		q.Set("redirect_uri", redirectURI)
	}
	if len(c.Scopes) > 0 {
		q.Set("scope", strings.Join(c.Scopes, " "))
	}
	return endpoint + "?" + q.Encode(), true
}
