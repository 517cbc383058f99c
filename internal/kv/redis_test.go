package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, s
}

func TestNewRedisStore(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestRedisSetGetDelete(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()

	if err := store.Set(ctx, KeyQuotes, []byte(`[{"id":"12345678"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := store.Get(ctx, KeyQuotes)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `[{"id":"12345678"}]` {
		t.Errorf("unexpected value %q", value)
	}

	if err := store.Delete(ctx, KeyQuotes); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, KeyQuotes); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisMissingKey(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	if _, err := store.Get(context.Background(), "never-written"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	if err := store.Set(context.Background(), KeyAuthenticated, []byte("true")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !s.Exists("quotefolio:" + KeyAuthenticated) {
		t.Errorf("expected namespaced key in redis")
	}
}
