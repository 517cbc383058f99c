package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	got := FormatAmount(decimal.NewFromInt(4500), "USD")
	if got != "$4,500.00" {
		t.Errorf("expected $4,500.00, got %q", got)
	}

	got = FormatAmount(decimal.RequireFromString("1234.5"), "USD")
	if got != "$1,234.50" {
		t.Errorf("expected $1,234.50, got %q", got)
	}
}

func TestFormatAmountDefaultsCurrency(t *testing.T) {
	got := FormatAmount(decimal.NewFromInt(10), "")
	if got != "$10.00" {
		t.Errorf("expected USD fallback, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	when := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	if got := FormatDate(when); got != "5 de marzo de 2026" {
		t.Errorf("unexpected long date %q", got)
	}
	if got := FormatShortDate(when); got != "5/3/2026" {
		t.Errorf("unexpected short date %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("expected empty string for zero time, got %q", got)
	}
}
