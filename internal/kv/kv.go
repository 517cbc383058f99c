// Package kv provides the persistent string-keyed store backing all
// application state. Values are serialized JSON documents; every writer
// owns its key and writes the full document through on each mutation.
package kv

import (
	"context"
	"errors"
)

// Keys used across the shared namespace.
const (
	KeyQuotes          = "quotes"
	KeyActivities      = "activities"
	KeyUserProfile     = "userProfile"
	KeyAuthenticated   = "isAuthenticated"
	KeyCurrentTemplate = "currentTemplateId"
)

// ErrNotFound distinguishes an absent key from a storage failure.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
