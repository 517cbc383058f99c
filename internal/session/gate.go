// Package session holds the authentication flag and the route-access
// policy evaluated before every request.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"quotefolio/api/internal/kv"
)

// Rule tags a route the way the original router's meta fields did.
type Rule int

const (
	Public Rule = iota
	RequireAuth
	GuestOnly
)

// Access is the policy decision for one request.
type Access int

const (
	Allow Access = iota
	RedirectLogin
	RedirectHome
)

// Gate is the boolean-flag session. The flag is loaded once at startup and
// mirrored to the persistent store on every change.
type Gate struct {
	mu            sync.Mutex
	store         kv.Store
	authenticated bool
}

func NewGate(store kv.Store) *Gate {
	return &Gate{store: store}
}

func (g *Gate) Load(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	raw, err := g.store.Get(ctx, kv.KeyAuthenticated)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session flag: %w", err)
	}
	g.authenticated = string(raw) == "true"
	return nil
}

func (g *Gate) Login(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = true
	return g.store.Set(ctx, kv.KeyAuthenticated, []byte("true"))
}

// Logout clears the flag and removes the persisted key entirely.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
	return g.store.Delete(ctx, kv.KeyAuthenticated)
}

func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Evaluate applies the route policy: guarded routes redirect to login when
// unauthenticated, guest-only routes redirect home when authenticated, and
// everything else passes unconditionally.
func (g *Gate) Evaluate(rule Rule) Access {
	authenticated := g.Authenticated()
	switch rule {
	case RequireAuth:
		if !authenticated {
			return RedirectLogin
		}
	case GuestOnly:
		if authenticated {
			return RedirectHome
		}
	}
	return Allow
}
