package templates

import (
	"context"
	"testing"

	"quotefolio/api/internal/kv"
)

func activeCount(catalog []Template) int {
	count := 0
	for _, t := range catalog {
		if t.Active {
			count++
		}
	}
	return count
}

func TestExactlyOneActiveInvariant(t *testing.T) {
	s := NewSelector(kv.NewMemoryStore())
	ctx := context.Background()

	sequence := []string{"creative", "corporate", "bogus", "minimal", "", "creative"}
	for _, id := range sequence {
		s.SetTemplate(ctx, id)
		if got := activeCount(s.All()); got != 1 {
			t.Fatalf("after SetTemplate(%q): expected exactly 1 active, got %d", id, got)
		}
	}
	if s.Current().ID != "creative" {
		t.Errorf("expected creative current, got %s", s.Current().ID)
	}
}

func TestSetTemplateUnknownIDIsNoOp(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSelector(store)
	ctx := context.Background()

	if s.SetTemplate(ctx, "bogus") {
		t.Fatalf("expected unknown id to be rejected")
	}
	if s.Current().ID != "minimal" {
		t.Errorf("current pointer changed on unknown id")
	}
	if _, err := store.Get(ctx, kv.KeyCurrentTemplate); err == nil {
		t.Errorf("unknown id should not be persisted")
	}
}

func TestSelectionPersistsByIdentifierOnly(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewSelector(store)
	ctx := context.Background()

	if !s.SetTemplate(ctx, "corporate") {
		t.Fatalf("SetTemplate failed")
	}

	raw, err := store.Get(ctx, kv.KeyCurrentTemplate)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(raw) != "corporate" {
		t.Errorf("expected bare identifier persisted, got %q", raw)
	}
}

func TestLoadRestoresPersistedSelection(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, kv.KeyCurrentTemplate, []byte("creative")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s := NewSelector(store)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Current().ID != "creative" {
		t.Errorf("expected creative restored, got %s", s.Current().ID)
	}
	if activeCount(s.All()) != 1 {
		t.Errorf("invariant broken after load")
	}
}

func TestLoadIgnoresUnknownPersistedSelection(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, kv.KeyCurrentTemplate, []byte("retired-style")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s := NewSelector(store)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Current().ID != "minimal" {
		t.Errorf("expected default after unknown persisted id, got %s", s.Current().ID)
	}
}
