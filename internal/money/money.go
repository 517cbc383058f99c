// Package money holds display formatting for amounts and dates.
package money

import (
	"fmt"
	"time"

	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an exact decimal amount as a localized currency
// string. Unknown currency codes fall back to USD formatting.
func FormatAmount(amount decimal.Decimal, code string) string {
	if code == "" {
		code = "USD"
	}
	// the Money constructor guarantees a non-nil currency
	cur := *money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a long-form es-MX date, empty string for zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatShortDate renders the numeric es-MX form, empty string for zero time.
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2/1/2006")
}
