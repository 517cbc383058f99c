package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/archive"
	"quotefolio/api/internal/kv"
	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/notify"
	"quotefolio/api/internal/search"
	"quotefolio/api/internal/status"
)

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	svc := New(kv.NewMemoryStore(), opts)
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestBootstrapSeedsEverything(t *testing.T) {
	svc := newTestService(t, Options{})

	if len(svc.Quotes()) != 2 {
		t.Errorf("expected 2 seeded quotes, got %d", len(svc.Quotes()))
	}
	if len(svc.Notifications()) != 3 {
		t.Errorf("expected 3 seeded notifications, got %d", len(svc.Notifications()))
	}
	if len(svc.Templates()) != 3 {
		t.Errorf("expected 3 templates, got %d", len(svc.Templates()))
	}
	if svc.Authenticated() {
		t.Errorf("expected fresh session to be unauthenticated")
	}
}

func TestArchiveRecordsMutations(t *testing.T) {
	svc := newTestService(t, Options{Archive: archive.New(t.TempDir(), "Tester")})
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, ledger.Quote{
		ClientName:  "Acme Corp",
		ProjectName: "Branding",
		Total:       decimal.NewFromInt(900),
		Currency:    "USD",
	})
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	sent := status.Sent
	if _, ok := svc.UpdateQuote(ctx, created.ID, ledger.QuotePatch{Status: &sent}); !ok {
		t.Fatalf("UpdateQuote failed")
	}

	history, err := svc.History(created.ID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(history))
	}
	if history[0].Author != "Tester" {
		t.Errorf("unexpected revision author %q", history[0].Author)
	}
}

func TestStatusChangeAddsNotification(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()

	before := svc.UnreadCount()

	accepted := status.Accepted
	if _, ok := svc.UpdateQuote(ctx, "12345678", ledger.QuotePatch{Status: &accepted}); !ok {
		t.Fatalf("UpdateQuote failed")
	}
	if svc.UnreadCount() != before+1 {
		t.Errorf("expected one new unread notification")
	}
	if latest := svc.Notifications()[0]; latest.Type != notify.TypeSuccess {
		t.Errorf("expected %q notification type, got %q", notify.TypeSuccess, latest.Type)
	}

	// repeating the same status is not a transition
	if _, ok := svc.UpdateQuote(ctx, "12345678", ledger.QuotePatch{Status: &accepted}); !ok {
		t.Fatalf("UpdateQuote failed")
	}
	if svc.UnreadCount() != before+1 {
		t.Errorf("expected no extra notification for unchanged status")
	}

	rejected := status.Rejected
	if _, ok := svc.UpdateQuote(ctx, "12345678", ledger.QuotePatch{Status: &rejected}); !ok {
		t.Fatalf("UpdateQuote failed")
	}
	if latest := svc.Notifications()[0]; latest.Type != notify.TypeWarning {
		t.Errorf("expected %q notification type, got %q", notify.TypeWarning, latest.Type)
	}
}

func TestSearchReflectsDeletes(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()

	if !svc.DeleteQuote(ctx, "12345678") {
		t.Fatalf("DeleteQuote failed")
	}

	resp := svc.SearchQuotes(search.Query{Text: "Tech", Limit: 20})
	if resp.Total != 0 {
		t.Errorf("expected deleted quote gone from search, got %d results", resp.Total)
	}
}

func TestUploadAssetWithoutStore(t *testing.T) {
	svc := newTestService(t, Options{})

	_, err := svc.UploadAsset(context.Background(), "logo", nil, 0, "image/png")
	if err == nil {
		t.Fatalf("expected error without asset store")
	}
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "ASSETS_UNAVAILABLE" {
		t.Errorf("unexpected error %v", err)
	}
}
