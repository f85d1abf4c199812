package domain

// Key-value namespace shared by the setup and reset authorities.
const (
	KeyOAuthConfigPrefix = "auth_config:"
	KeyOAuthConfigGitHub = KeyOAuthConfigPrefix + ProviderGitHub
	KeyOwnerID           = "github_owner_id"
	KeyOwnerLogin        = "github_owner_username"
	KeySetupCompleted    = "admin_first_login_completed"
	KeyResetDisabled     = "reset_route_disabled"
)

// FlagTrue is the literal value written for boolean keys.
const FlagTrue = "true"

// ResetKeys lists the keys removed by a reset, in deletion order. Owner and
// bootstrap state go first so the system is never locked without an owner.
var ResetKeys = []string{
	KeyOAuthConfigGitHub,
	KeyOwnerID,
	KeyOwnerLogin,
	KeySetupCompleted,
}
