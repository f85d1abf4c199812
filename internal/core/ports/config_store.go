package ports

import "context"

// ConfigStore is the eventually-consistent key-value namespace holding the
// bootstrap state. Implementations wrap transport failures with
// domain.ErrStoreUnavailable. A missing key is not an error.
//
// No compare-and-swap is part of the contract; a stricter implementation can
// be substituted behind this interface without touching policy code.
type ConfigStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AdminLookup reads the authoritative admin flag from the relational store.
// found is false when no row exists for the user.
type AdminLookup interface {
	IsAdmin(ctx context.Context, userID string) (isAdmin bool, found bool, err error)
}

// Pinger is implemented by store adapters that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
