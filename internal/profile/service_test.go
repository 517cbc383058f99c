package profile

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/kv"
)

func TestDefaultsWhenStoreEmpty(t *testing.T) {
	s := NewService(kv.NewMemoryStore())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p := s.Get()
	if p.Name != "Freelancer Demo" || p.Currency != "USD" {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if !p.TaxRate.Equal(decimal.NewFromInt(16)) {
		t.Errorf("expected default tax rate 16, got %s", p.TaxRate)
	}
}

func TestUpdateShallowMergesAndPersists(t *testing.T) {
	store := kv.NewMemoryStore()
	s := NewService(store)
	ctx := context.Background()

	company := "Estudio Nuevo"
	logo := "asset_logo_abc123"
	updated := s.Update(ctx, Patch{Company: &company, Logo: &logo})

	if updated.Company != "Estudio Nuevo" || updated.Logo != "asset_logo_abc123" {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Name != "Freelancer Demo" {
		t.Errorf("untouched field changed: %+v", updated)
	}

	reloaded := NewService(store)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Get().Company != "Estudio Nuevo" {
		t.Errorf("profile did not persist across reload")
	}
}

func TestLoadKeepsDefaultsOnCorruptPayload(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, kv.KeyUserProfile, []byte("{broken")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s := NewService(store)
	if err := s.Load(ctx); err == nil {
		t.Errorf("expected error for corrupt payload")
	}
	if s.Get().Name != "Freelancer Demo" {
		t.Errorf("defaults lost after corrupt load: %+v", s.Get())
	}
}
