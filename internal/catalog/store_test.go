package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubLister struct {
	products []domain.Product
	err      error
	calls    int
}

func (s *stubLister) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.calls++
	return s.products, s.err
}

func TestReloadReplacesSnapshot(t *testing.T) {
	lister := &stubLister{products: []domain.Product{{ID: "p1", Name: "Widget"}}}
	store := New(lister)

	if store.Loaded() {
		t.Fatalf("store should start unloaded")
	}
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !store.Loaded() {
		t.Fatalf("store should be loaded after reload")
	}
	if got := store.Products(); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	lister := &stubLister{products: []domain.Product{{ID: "p1"}}}
	store := New(lister)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	lister.err = errors.New("backend down")
	if err := store.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload failure")
	}
	if got := store.Products(); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("failed reload must keep the previous snapshot, got %+v", got)
	}
}

func TestGet(t *testing.T) {
	lister := &stubLister{products: []domain.Product{{ID: "p1"}, {ID: "p2"}}}
	store := New(lister)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if _, ok := store.Get("p2"); !ok {
		t.Fatalf("expected to find p2")
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("unexpected hit for missing product")
	}
}

func TestInvalidate(t *testing.T) {
	lister := &stubLister{products: []domain.Product{{ID: "p1"}}}
	store := New(lister)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	store.Invalidate()
	if store.Loaded() {
		t.Fatalf("invalidate must drop the loaded flag")
	}
	if got := store.Products(); len(got) != 0 {
		t.Fatalf("invalidate must drop the snapshot, got %+v", got)
	}
}
