package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/status"
)

// seedQuotes returns the demonstration dataset shown on first run.
// Timestamps are relative to now; shape is fixed.
func seedQuotes(now time.Time) []Quote {
	return []Quote{
		{
			ID:          "12345678",
			ClientName:  "Tech Solutions Inc.",
			ProjectName: "Rediseño de E-commerce",
			CreatedAt:   now.Add(-7 * 24 * time.Hour),
			IssueDate:   now,
			ExpiryDate:  now.Add(15 * 24 * time.Hour),
			Status:      status.Sent,
			Total:       decimal.NewFromInt(4500),
			Currency:    "USD",
			Items: []LineItem{
				{Name: "Diseño UX/UI", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1500), Total: decimal.NewFromInt(1500)},
				{Name: "Desarrollo Frontend", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(2000), Total: decimal.NewFromInt(2000)},
				{Name: "Integración Backend", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000)},
			},
			Subtotal: decimal.NewFromInt(4500),
		},
		{
			ID:          "87654321",
			ClientName:  "Maria González",
			ProjectName: "Sitio Web Personal",
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
			IssueDate:   now,
			ExpiryDate:  now.Add(15 * 24 * time.Hour),
			Status:      status.Accepted,
			Total:       decimal.NewFromInt(1200),
			Currency:    "USD",
			Items: []LineItem{
				{Name: "Diseño y Desarrollo", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1200), Total: decimal.NewFromInt(1200)},
			},
			Subtotal: decimal.NewFromInt(1200),
		},
	}
}

func seedActivities(now time.Time) []Activity {
	return []Activity{
		{
			ID:      1,
			Type:    ActivityAccepted,
			Message: "Cotización aceptada por Maria González",
			Date:    now.Add(-1 * 24 * time.Hour),
			QuoteID: "87654321",
		},
		{
			ID:      2,
			Type:    ActivitySent,
			Message: "Cotización enviada a Tech Solutions Inc.",
			Date:    now.Add(-7 * 24 * time.Hour),
			QuoteID: "12345678",
		},
	}
}
