package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

func TestConfigStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewConfigStore()

	if _, found, err := s.Get(ctx, "k"); err != nil || found {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}
	if err := s.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || v != "v" {
		t.Fatalf("unexpected get result: %q %v %v", v, found, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("expected key deleted")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing key should succeed, got %v", err)
	}
}

func TestConfigStore_FailureInjection(t *testing.T) {
	ctx := context.Background()
	s := NewConfigStore()
	boom := errors.New("boom")

	s.FailOn(OpPut, "k", boom)
	err := s.Put(ctx, "k", "v")
	if !errors.Is(err, domain.ErrStoreUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if err := s.Put(ctx, "other", "v"); err != nil {
		t.Fatalf("failure should be scoped to key, got %v", err)
	}

	s.FailOn(OpPut, "k", nil)
	if err := s.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("cleared failure still active: %v", err)
	}

	s.SetDown(boom)
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store down, got %v", err)
	}
	if err := s.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestConfigStore_AfterPutRunsOnce(t *testing.T) {
	ctx := context.Background()
	s := NewConfigStore()

	calls := 0
	s.AfterPut("k", func() {
		calls++
		if v, _, _ := s.Get(ctx, "k"); v != "first" {
			t.Errorf("hook should see the applied write, got %q", v)
		}
		if err := s.Put(ctx, "k", "nested"); err != nil {
			t.Errorf("nested put: %v", err)
		}
	})

	if err := s.Put(ctx, "other", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", "first"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", "second"); err != nil {
		t.Fatalf("put: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected hook to run once, ran %d times", calls)
	}
	if v, _, _ := s.Get(ctx, "k"); v != "second" {
		t.Fatalf("unexpected value: %q", v)
	}
}

func TestAdminLookup(t *testing.T) {
	ctx := context.Background()
	l := NewAdminLookup()
	l.Set("1", true)

	if v, found, err := l.IsAdmin(ctx, "1"); err != nil || !found || !v {
		t.Fatalf("unexpected lookup: %v %v %v", v, found, err)
	}
	if _, found, err := l.IsAdmin(ctx, "2"); err != nil || found {
		t.Fatalf("expected no row, got found=%v err=%v", found, err)
	}

	l.SetError(errors.New("down"))
	if _, _, err := l.IsAdmin(ctx, "1"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}
