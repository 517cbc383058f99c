// Package templates owns the visual template catalog and the single
// "current" selection, persisted by identifier only.
package templates

import (
	"context"
	"errors"
	"log"
	"sync"

	"quotefolio/api/internal/kv"
)

type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
	Active      bool   `json:"active"`
}

// defaultCatalog returns the fixed catalog with its pre-marked active entry.
func defaultCatalog() []Template {
	return []Template{
		{
			ID:          "minimal",
			Name:        "Minimalista",
			Description: "Diseño limpio con mucho espacio en blanco",
			Preview:     "bg-white border-gray-200",
			Active:      true,
		},
		{
			ID:          "creative",
			Name:        "Creativo",
			Description: "Colores vibrantes y tipografía moderna",
			Preview:     "bg-indigo-50 border-indigo-200",
		},
		{
			ID:          "corporate",
			Name:        "Corporativo",
			Description: "Serio y profesional, ideal para empresas",
			Preview:     "bg-slate-50 border-slate-300",
		},
	}
}

// Selector enforces the exactly-one-active invariant on every mutation.
type Selector struct {
	mu      sync.Mutex
	store   kv.Store
	catalog []Template
	current string
}

func NewSelector(store kv.Store) *Selector {
	s := &Selector{store: store, catalog: defaultCatalog()}
	s.current = s.activeIDLocked()
	return s
}

// Load re-derives the current selection from the persisted identifier when
// present and valid; otherwise the pre-marked entry stands.
func (s *Selector) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, kv.KeyCurrentTemplate)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	id := string(raw)
	if !s.applyLocked(id) {
		log.Printf("templates: persisted template %q unknown, keeping %q", id, s.current)
	}
	return nil
}

// SetTemplate activates the matching template and persists its identifier.
// An unknown identifier is a defensive no-op.
func (s *Selector) SetTemplate(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.applyLocked(id) {
		return false
	}
	if err := s.store.Set(ctx, kv.KeyCurrentTemplate, []byte(id)); err != nil {
		log.Printf("templates: persist selection: %v", err)
	}
	return true
}

// Current returns the active template. The catalog always has one.
func (s *Selector) Current() Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.catalog {
		if t.ID == s.current {
			return t
		}
	}
	return s.catalog[0]
}

// All returns a snapshot of the catalog.
func (s *Selector) All() []Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Template, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Selector) applyLocked(id string) bool {
	found := false
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range s.catalog {
		s.catalog[i].Active = s.catalog[i].ID == id
	}
	s.current = id
	return true
}

func (s *Selector) activeIDLocked() string {
	for _, t := range s.catalog {
		if t.Active {
			return t.ID
		}
	}
	return s.catalog[0].ID
}
