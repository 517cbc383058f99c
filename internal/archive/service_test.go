package archive

import (
	"testing"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/status"
)

func testQuote() ledger.Quote {
	return ledger.Quote{
		ID:          "abc12345",
		ClientName:  "Acme Corp",
		ProjectName: "Branding",
		Status:      status.Draft,
		Total:       decimal.NewFromInt(1200),
		Currency:    "USD",
	}
}

func TestCommitAndHistory(t *testing.T) {
	svc := New(t.TempDir(), "Tester")

	q := testQuote()
	first, err := svc.Commit(q, "Nueva cotización creada para Acme Corp")
	if err != nil {
		t.Fatalf("first Commit failed: %v", err)
	}
	if first.Hash == "" || first.Author != "Tester" {
		t.Errorf("unexpected revision %+v", first)
	}

	q.Status = status.Sent
	second, err := svc.Commit(q, "Cotización enviada a Acme Corp")
	if err != nil {
		t.Fatalf("second Commit failed: %v", err)
	}

	history, err := svc.History(q.ID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(history))
	}
	if history[0].Hash != second.Hash {
		t.Errorf("expected newest first, got %s", history[0].Hash)
	}
	if history[1].Hash != first.Hash {
		t.Errorf("expected oldest last, got %s", history[1].Hash)
	}
}

func TestHistoryLimit(t *testing.T) {
	svc := New(t.TempDir(), "")

	q := testQuote()
	for i := 0; i < 3; i++ {
		if _, err := svc.Commit(q, "update"); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	}

	history, err := svc.History(q.ID, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 revisions with limit, got %d", len(history))
	}
}

func TestHistoryMissingRepo(t *testing.T) {
	svc := New(t.TempDir(), "Tester")

	history, err := svc.History("missing1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d entries", len(history))
	}
}

func TestQuoteAtRevision(t *testing.T) {
	svc := New(t.TempDir(), "Tester")

	q := testQuote()
	first, err := svc.Commit(q, "created")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	q.Status = status.Accepted
	q.Total = decimal.NewFromInt(1500)
	if _, err := svc.Commit(q, "accepted"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	old, err := svc.QuoteAt(q.ID, first.Hash)
	if err != nil {
		t.Fatalf("QuoteAt failed: %v", err)
	}
	if old.Status != status.Draft {
		t.Errorf("expected archived status draft, got %s", old.Status)
	}
	if !old.Total.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected archived total 1200, got %s", old.Total)
	}
}
