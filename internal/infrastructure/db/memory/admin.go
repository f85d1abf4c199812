package memory

import (
	"context"
	"sync"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// AdminLookup is a map-backed ports.AdminLookup.
type AdminLookup struct {
	mu     sync.RWMutex
	admins map[string]bool
	err    error
}

func NewAdminLookup() *AdminLookup {
	return &AdminLookup{admins: make(map[string]bool)}
}

// Set records a row for userID.
func (l *AdminLookup) Set(userID string, isAdmin bool) {
	l.mu.Lock()
	l.admins[userID] = isAdmin
	l.mu.Unlock()
}

// SetError makes every lookup fail with err until called with nil.
func (l *AdminLookup) SetError(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

func (l *AdminLookup) IsAdmin(_ context.Context, userID string) (bool, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return false, false, domain.StoreError("memory admin lookup", l.err)
	}
	v, ok := l.admins[userID]
	return v, ok, nil
}

func (l *AdminLookup) Ping(context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return domain.StoreError("memory admin ping", l.err)
	}
	return nil
}
