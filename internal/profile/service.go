// Package profile manages the singleton user profile.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/kv"
)

type Profile struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Company    string          `json:"company"`
	Phone      string          `json:"phone"`
	Logo       string          `json:"logo,omitempty"`
	Signature  string          `json:"signature,omitempty"`
	BrandColor string          `json:"brandColor"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	Currency   string          `json:"currency"`
}

// Patch carries a shallow merge; nil fields are left untouched.
type Patch struct {
	Name       *string          `json:"name"`
	Email      *string          `json:"email"`
	Company    *string          `json:"company"`
	Phone      *string          `json:"phone"`
	Logo       *string          `json:"logo"`
	Signature  *string          `json:"signature"`
	BrandColor *string          `json:"brandColor"`
	TaxRate    *decimal.Decimal `json:"taxRate"`
	Currency   *string          `json:"currency"`
}

func defaultProfile() Profile {
	return Profile{
		Name:       "Freelancer Demo",
		Email:      "hola@freelancer.com",
		Company:    "Studio Creativo",
		Phone:      "+52 555 555 5555",
		BrandColor: "#0ea5e9",
		TaxRate:    decimal.NewFromInt(16),
		Currency:   "USD",
	}
}

type Service struct {
	mu      sync.Mutex
	store   kv.Store
	current Profile
}

func NewService(store kv.Store) *Service {
	return &Service{store: store, current: defaultProfile()}
}

// Load replaces the default with the persisted profile when present. A
// corrupt payload keeps the default and reports the problem.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, kv.KeyUserProfile)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	var loaded Profile
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("corrupt profile, keeping defaults: %w", err)
	}
	s.current = loaded
	return nil
}

func (s *Service) Get() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update shallow-merges the patch into the current profile and persists
// the result.
func (s *Service) Update(ctx context.Context, patch Patch) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.current.Name = *patch.Name
	}
	if patch.Email != nil {
		s.current.Email = *patch.Email
	}
	if patch.Company != nil {
		s.current.Company = *patch.Company
	}
	if patch.Phone != nil {
		s.current.Phone = *patch.Phone
	}
	if patch.Logo != nil {
		s.current.Logo = *patch.Logo
	}
	if patch.Signature != nil {
		s.current.Signature = *patch.Signature
	}
	if patch.BrandColor != nil {
		s.current.BrandColor = *patch.BrandColor
	}
	if patch.TaxRate != nil {
		s.current.TaxRate = *patch.TaxRate
	}
	if patch.Currency != nil {
		s.current.Currency = *patch.Currency
	}

	payload, err := json.Marshal(s.current)
	if err != nil {
		log.Printf("profile: marshal: %v", err)
		return s.current
	}
	if err := s.store.Set(ctx, kv.KeyUserProfile, payload); err != nil {
		log.Printf("profile: persist: %v", err)
	}
	return s.current
}
