package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Get(ctx, KeyQuotes); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh store, got %v", err)
	}

	if err := store.Set(ctx, KeyQuotes, []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, KeyQuotes, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}

	value, err := store.Get(ctx, KeyQuotes)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `[{"id":"a"}]` {
		t.Errorf("unexpected value %q", value)
	}

	if err := store.Delete(ctx, KeyQuotes); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, KeyQuotes); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.Set(ctx, KeyCurrentTemplate, []byte("creative")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get(ctx, KeyCurrentTemplate)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(value) != "creative" {
		t.Errorf("expected persisted value, got %q", value)
	}
}
