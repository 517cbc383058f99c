// Package ledger owns the quote collection and its append-only activity
// trail. Every mutation serializes the full collection back to the
// persistent store; in-memory state is the source of truth for a session.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/kv"
	"quotefolio/api/internal/status"
	"quotefolio/api/internal/util"
)

// ActivityMessages maps a status transition to the templated trail message
// it logs. Transitions outside the map log nothing.
type ActivityMessages map[status.Status]string

// DefaultActivityMessages covers the four transitions the original tool
// logged; moving back to draft stays silent.
func DefaultActivityMessages() ActivityMessages {
	return ActivityMessages{
		status.Sent:     "Cotización enviada a %s",
		status.Accepted: "Cotización aceptada por %s",
		status.Rejected: "Cotización rechazada por %s",
		status.Viewed:   "Cotización vista por %s",
	}
}

type Service struct {
	mu         sync.Mutex
	store      kv.Store
	quotes     []Quote
	activities []Activity
	messages   ActivityMessages

	now   func() time.Time
	newID func() string
}

func NewService(store kv.Store) *Service {
	return &Service{
		store:    store,
		messages: DefaultActivityMessages(),
		now:      time.Now,
		newID:    func() string { return util.NewID("") },
	}
}

// SetActivityMessages replaces the status→message mapping.
func (s *Service) SetActivityMessages(m ActivityMessages) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = m
}

// Load reads the persisted collection and trail, seeding the demo dataset
// when either is absent. A corrupt payload is replaced by the seed and
// reported; the ledger stays usable either way.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loadErr error
	now := s.now()

	raw, err := s.store.Get(ctx, kv.KeyQuotes)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.quotes = seedQuotes(now)
		s.persistQuotesLocked(ctx)
	case err != nil:
		return fmt.Errorf("load quotes: %w", err)
	default:
		var quotes []Quote
		if err := json.Unmarshal(raw, &quotes); err != nil {
			loadErr = &CorruptStateError{Key: kv.KeyQuotes, Err: err}
			s.quotes = seedQuotes(now)
			s.persistQuotesLocked(ctx)
		} else {
			s.quotes = quotes
		}
	}

	raw, err = s.store.Get(ctx, kv.KeyActivities)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.activities = seedActivities(now)
		s.persistActivitiesLocked(ctx)
	case err != nil:
		return fmt.Errorf("load activities: %w", err)
	default:
		var activities []Activity
		if err := json.Unmarshal(raw, &activities); err != nil {
			if loadErr == nil {
				loadErr = &CorruptStateError{Key: kv.KeyActivities, Err: err}
			}
			s.activities = seedActivities(now)
			s.persistActivitiesLocked(ctx)
		} else {
			s.activities = activities
		}
	}

	return loadErr
}

// AddQuote assigns a fresh identifier, stamps creation time, forces status
// draft, persists and logs a created activity. The only validation is the
// minimal required-field contract.
func (s *Service) AddQuote(ctx context.Context, draft Quote) (Quote, error) {
	if draft.ClientName == "" {
		return Quote{}, &ValidationError{Field: "clientName"}
	}
	if draft.ProjectName == "" {
		return Quote{}, &ValidationError{Field: "projectName"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = s.newID()
	draft.CreatedAt = s.now()
	draft.Status = status.Draft
	s.quotes = append(s.quotes, draft)
	s.persistQuotesLocked(ctx)
	s.logActivityLocked(ctx, ActivityCreated,
		fmt.Sprintf("Nueva cotización creada para %s", draft.ClientName), draft.ID)
	return draft, nil
}

// UpdateQuote shallow-merges the patch into the matching quote. Absent
// identifiers are a tolerant no-op. A status change covered by the
// configured mapping logs exactly one activity.
func (s *Service) UpdateQuote(ctx context.Context, id string, patch QuotePatch) (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return Quote{}, false
	}

	oldStatus := s.quotes[index].Status
	patch.apply(&s.quotes[index])
	s.quotes[index].ID = id // identifier never changes
	s.persistQuotesLocked(ctx)

	updated := s.quotes[index]
	if patch.Status != nil && *patch.Status != oldStatus {
		if tmpl, ok := s.messages[*patch.Status]; ok {
			s.logActivityLocked(ctx, string(*patch.Status),
				fmt.Sprintf(tmpl, updated.ClientName), id)
		}
	}
	return updated, true
}

// DeleteQuote removes the matching quote and logs a deleted activity.
// Calling it again with the same identifier is a no-op.
func (s *Service) DeleteQuote(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted *Quote
	kept := s.quotes[:0]
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			q := s.quotes[i]
			deleted = &q
			continue
		}
		kept = append(kept, s.quotes[i])
	}
	s.quotes = kept
	s.persistQuotesLocked(ctx)

	if deleted == nil {
		return false
	}
	// the original logs deletions without a quote reference
	s.logActivityLocked(ctx, ActivityDeleted,
		fmt.Sprintf("Cotización para %s eliminada", deleted.ClientName), "")
	return true
}

// QuoteByID is a pure lookup.
func (s *Service) QuoteByID(id string) (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			return s.quotes[i], true
		}
	}
	return Quote{}, false
}

// Quotes returns a snapshot of the collection in insertion order.
func (s *Service) Quotes() []Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// Activities returns a snapshot of the trail, newest first.
func (s *Service) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// LogActivity appends an entry to the trail outside of a quote mutation.
func (s *Service) LogActivity(ctx context.Context, activityType, message, quoteID string) Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logActivityLocked(ctx, activityType, message, quoteID)
}

// Stats recomputes the aggregates on every call.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{Total: len(s.quotes), Revenue: decimal.Zero}
	for i := range s.quotes {
		switch s.quotes[i].Status {
		case status.Sent:
			stats.Pending++
		case status.Accepted:
			stats.Accepted++
			stats.Revenue = stats.Revenue.Add(s.quotes[i].Total)
		}
	}
	return stats
}

func (s *Service) logActivityLocked(ctx context.Context, activityType, message, quoteID string) Activity {
	entry := Activity{
		ID:      s.now().UnixMilli(),
		Type:    activityType,
		Message: message,
		Date:    s.now(),
		QuoteID: quoteID,
	}
	s.activities = append([]Activity{entry}, s.activities...)
	s.persistActivitiesLocked(ctx)
	return entry
}

// persistQuotesLocked writes the full collection through to the store.
// Write failures are logged, not surfaced: the session state remains the
// source of truth and the tool must stay usable.
func (s *Service) persistQuotesLocked(ctx context.Context) {
	payload, err := json.Marshal(s.quotes)
	if err != nil {
		log.Printf("ledger: marshal quotes: %v", err)
		return
	}
	if err := s.store.Set(ctx, kv.KeyQuotes, payload); err != nil {
		log.Printf("ledger: persist quotes: %v", err)
	}
}

func (s *Service) persistActivitiesLocked(ctx context.Context) {
	payload, err := json.Marshal(s.activities)
	if err != nil {
		log.Printf("ledger: marshal activities: %v", err)
		return
	}
	if err := s.store.Set(ctx, kv.KeyActivities, payload); err != nil {
		log.Printf("ledger: persist activities: %v", err)
	}
}
