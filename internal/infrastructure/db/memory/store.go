// Package memory provides in-process implementations of the store ports with
// per-operation failure injection. It backs tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// Op names a store operation for failure injection.
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpDelete Op = "delete"
)

// ConfigStore is a map-backed ports.ConfigStore.
type ConfigStore struct {
	mu       sync.Mutex
	data     map[string]string
	failures map[Op]map[string]error
	down     error
	writes   []string
	afterPut map[string]func()
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		data:     make(map[string]string),
		failures: make(map[Op]map[string]error),
		afterPut: make(map[string]func()),
	}
}

// FailOn makes op on key return err (wrapped as a store error) until cleared
// with FailOn(op, key, nil).
func (s *ConfigStore) FailOn(op Op, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures[op] == nil {
		s.failures[op] = make(map[string]error)
	}
	if err == nil {
		delete(s.failures[op], key)
		return
	}
	s.failures[op][key] = err
}

// SetDown makes every operation fail with err. Pass nil to bring the store back.
func (s *ConfigStore) SetDown(err error) {
	s.mu.Lock()
	s.down = err
	s.mu.Unlock()
}

func (s *ConfigStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(OpGet, key); err != nil {
		return "", false, err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// AfterPut runs fn once, after the next successful Put of key has been
// applied. fn runs without the store lock held, so it may call back into the
// store; it is how tests interleave two writers at an exact point.
func (s *ConfigStore) AfterPut(key string, fn func()) {
	s.mu.Lock()
	s.afterPut[key] = fn
	s.mu.Unlock()
}

func (s *ConfigStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	if err := s.failure(OpPut, key); err != nil {
		s.mu.Unlock()
		return err
	}
	s.data[key] = value
	s.writes = append(s.writes, "put:"+key)
	hook := s.afterPut[key]
	delete(s.afterPut, key)
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (s *ConfigStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(OpDelete, key); err != nil {
		return err
	}
	delete(s.data, key)
	s.writes = append(s.writes, "delete:"+key)
	return nil
}

func (s *ConfigStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down != nil {
		return domain.StoreError("memory ping", s.down)
	}
	return nil
}

// Writes returns the successful mutations in the order they were applied,
// formatted as "put:<key>" or "delete:<key>".
func (s *ConfigStore) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}

// Snapshot returns a copy of the stored keys.
func (s *ConfigStore) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s *ConfigStore) failure(op Op, key string) error {
	if s.down != nil {
		return domain.StoreError("memory "+string(op), s.down)
	}
	if err, ok := s.failures[op][key]; ok {
		return domain.StoreError("memory "+string(op)+" "+key, err)
	}
	return nil
}
