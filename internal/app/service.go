package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"quotefolio/api/internal/archive"
	"quotefolio/api/internal/blob"
	"quotefolio/api/internal/export"
	"quotefolio/api/internal/kv"
	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/notify"
	"quotefolio/api/internal/profile"
	"quotefolio/api/internal/search"
	"quotefolio/api/internal/session"
	"quotefolio/api/internal/status"
	"quotefolio/api/internal/templates"
	"quotefolio/api/internal/toast"
)

// Service is the application facade the HTTP layer talks to. It wires the
// ledger, the selector, the feed, the queue, the gate and the optional
// search/archive/asset backends behind one surface.
type Service struct {
	store kv.Store

	ledger    *ledger.Service
	selector  *templates.Selector
	feed      *notify.Feed
	toasts    *toast.Queue
	gate      *session.Gate
	profile   *profile.Service
	search    *search.Service
	exporter  *export.Service
	archive   *archive.Service // nil when no archive dir configured
	assets    *blob.Store      // nil when no object store configured
	meili     *search.Meili
}

// Options carries the optional backends; nil members disable the feature.
type Options struct {
	Meili   *search.Meili
	Archive *archive.Service
	Assets  *blob.Store
}

func New(store kv.Store, opts Options) *Service {
	svc := &Service{
		store:    store,
		ledger:   ledger.NewService(store),
		selector: templates.NewSelector(store),
		feed:     notify.NewFeed(),
		toasts:   toast.NewQueue(),
		gate:     session.NewGate(store),
		profile:  profile.NewService(store),
		exporter: export.NewService(),
		archive:  opts.Archive,
		assets:   opts.Assets,
		meili:    opts.Meili,
	}
	memory := search.NewMemory(svc.searchSnapshot)
	svc.search = search.NewService(opts.Meili, memory)
	return svc
}

// Bootstrap loads persisted state and seeds what is absent. Recoverable
// problems (corrupt payloads) come back joined as a warning; the service is
// usable either way.
func (s *Service) Bootstrap(ctx context.Context) error {
	var warnings []error

	if err := s.ledger.Load(ctx); err != nil {
		var corrupt *ledger.CorruptStateError
		if !errors.As(err, &corrupt) {
			return fmt.Errorf("load ledger: %w", err)
		}
		warnings = append(warnings, err)
	}
	if err := s.selector.Load(ctx); err != nil {
		warnings = append(warnings, err)
	}
	if err := s.profile.Load(ctx); err != nil {
		warnings = append(warnings, err)
	}
	if err := s.gate.Load(ctx); err != nil {
		warnings = append(warnings, err)
	}
	s.feed.Seed()

	s.search.ReindexAll(s.searchSnapshot())

	return errors.Join(warnings...)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) Close() {
	s.toasts.Stop()
	if s.meili != nil {
		s.meili.Close()
	}
	if err := s.store.Close(); err != nil {
		log.Printf("app: close store: %v", err)
	}
}

// Quotes

func (s *Service) Quotes() []ledger.Quote {
	return s.ledger.Quotes()
}

func (s *Service) QuoteByID(id string) (ledger.Quote, bool) {
	return s.ledger.QuoteByID(id)
}

func (s *Service) CreateQuote(ctx context.Context, draft ledger.Quote) (ledger.Quote, error) {
	created, err := s.ledger.AddQuote(ctx, draft)
	if err != nil {
		return ledger.Quote{}, err
	}
	s.search.IndexQuote(searchRecord(created))
	s.archiveCommit(created, fmt.Sprintf("Nueva cotización creada para %s", created.ClientName))
	return created, nil
}

func (s *Service) UpdateQuote(ctx context.Context, id string, patch ledger.QuotePatch) (ledger.Quote, bool) {
	before, _ := s.ledger.QuoteByID(id)
	updated, ok := s.ledger.UpdateQuote(ctx, id, patch)
	if !ok {
		return ledger.Quote{}, false
	}
	s.search.IndexQuote(searchRecord(updated))
	s.archiveCommit(updated, fmt.Sprintf("Cotización %s actualizada", id))

	if patch.Status != nil && *patch.Status != before.Status {
		s.notifyStatusChange(updated)
	}
	return updated, true
}

func (s *Service) DeleteQuote(ctx context.Context, id string) bool {
	deleted := s.ledger.DeleteQuote(ctx, id)
	if deleted {
		s.search.DeleteQuote(id)
	}
	return deleted
}

func (s *Service) Activities() []ledger.Activity {
	return s.ledger.Activities()
}

func (s *Service) Stats() ledger.Stats {
	return s.ledger.Stats()
}

func (s *Service) SearchQuotes(q search.Query) search.Response {
	return s.search.Search(q)
}

// Preview renders the quote with the active template and the current
// profile. format is "html", "pdf" or empty for html.
func (s *Service) Preview(id, format string) (*export.Result, error) {
	q, ok := s.ledger.QuoteByID(id)
	if !ok {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Quote not found", nil)
	}
	result, err := s.exporter.Render(q, s.selector.Current(), s.profile.Get(), format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "format must be html or pdf", nil)
		}
		return nil, err
	}
	return result, nil
}

// History lists archived revisions of a quote, newest first. Without an
// archive dir the history is always empty.
func (s *Service) History(id string, limit int) ([]archive.Revision, error) {
	if s.archive == nil {
		return []archive.Revision{}, nil
	}
	return s.archive.History(id, limit)
}

// Templates

func (s *Service) Templates() []templates.Template {
	return s.selector.All()
}

func (s *Service) CurrentTemplate() templates.Template {
	return s.selector.Current()
}

func (s *Service) SetTemplate(ctx context.Context, id string) templates.Template {
	s.selector.SetTemplate(ctx, id)
	return s.selector.Current()
}

// Profile

func (s *Service) Profile() profile.Profile {
	return s.profile.Get()
}

func (s *Service) UpdateProfile(ctx context.Context, patch profile.Patch) profile.Profile {
	return s.profile.Update(ctx, patch)
}

// UploadAsset stores a logo or signature image and records its object key
// on the profile.
func (s *Service) UploadAsset(ctx context.Context, kind string, r io.Reader, size int64, contentType string) (string, error) {
	if s.assets == nil {
		return "", domainError(http.StatusServiceUnavailable, "ASSETS_UNAVAILABLE", "Asset storage not configured", nil)
	}
	if kind != "logo" && kind != "signature" {
		return "", domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "kind must be logo or signature", nil)
	}

	key := fmt.Sprintf("profile/%s-%d", kind, time.Now().UnixMilli())
	info, err := s.assets.Put(ctx, key, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}

	patch := profile.Patch{}
	if kind == "logo" {
		patch.Logo = &info.Key
	} else {
		patch.Signature = &info.Key
	}
	s.profile.Update(ctx, patch)
	return info.Key, nil
}

// Session

func (s *Service) Login(ctx context.Context) error {
	return s.gate.Login(ctx)
}

func (s *Service) Logout(ctx context.Context) error {
	return s.gate.Logout(ctx)
}

func (s *Service) Authenticated() bool {
	return s.gate.Authenticated()
}

func (s *Service) Access(rule session.Rule) session.Access {
	return s.gate.Evaluate(rule)
}

// Notifications

func (s *Service) Notifications() []notify.Notification {
	return s.feed.All()
}

func (s *Service) UnreadCount() int {
	return s.feed.UnreadCount()
}

func (s *Service) MarkNotificationRead(id int64) {
	s.feed.MarkRead(id)
}

func (s *Service) MarkAllNotificationsRead() {
	s.feed.MarkAllRead()
}

// Toasts

func (s *Service) Toasts() []toast.Toast {
	return s.toasts.Active()
}

func (s *Service) AddToast(message, toastType string, duration time.Duration) (toast.Toast, error) {
	if message == "" {
		return toast.Toast{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "message is required", nil)
	}
	return s.toasts.Add(message, toastType, duration), nil
}

func (s *Service) RemoveToast(id int64) {
	s.toasts.Remove(id)
}

func (s *Service) archiveCommit(q ledger.Quote, message string) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Commit(q, message); err != nil {
		log.Printf("app: archive quote %s: %v", q.ID, err)
	}
}

func (s *Service) notifyStatusChange(q ledger.Quote) {
	switch q.Status {
	case status.Accepted:
		s.feed.Add("Cotización aceptada",
			fmt.Sprintf("%s aceptó la cotización de %s", q.ClientName, q.ProjectName), notify.TypeSuccess)
	case status.Rejected:
		s.feed.Add("Cotización rechazada",
			fmt.Sprintf("%s rechazó la cotización de %s", q.ClientName, q.ProjectName), notify.TypeWarning)
	}
}

func (s *Service) searchSnapshot() []search.QuoteRecord {
	quotes := s.ledger.Quotes()
	records := make([]search.QuoteRecord, 0, len(quotes))
	for _, q := range quotes {
		records = append(records, searchRecord(q))
	}
	return records
}

func searchRecord(q ledger.Quote) search.QuoteRecord {
	return search.QuoteRecord{
		ID:          q.ID,
		ClientName:  q.ClientName,
		ProjectName: q.ProjectName,
		Status:      string(q.Status),
		Currency:    q.Currency,
		Total:       q.Total.String(),
	}
}
