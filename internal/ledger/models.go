package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/status"
)

// Quote is a priced proposal with line items and a lifecycle status.
// The identifier is assigned at creation and never changes.
type Quote struct {
	ID             string          `json:"id"`
	ClientName     string          `json:"clientName"`
	ProjectName    string          `json:"projectName"`
	CreatedAt      time.Time       `json:"createdAt"`
	IssueDate      time.Time       `json:"issueDate"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	Status         status.Status   `json:"status"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	Items          []LineItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
}

// LineItem totals are caller-supplied and never recomputed on edit.
type LineItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// QuotePatch carries a shallow merge: nil fields are left untouched.
type QuotePatch struct {
	ClientName     *string          `json:"clientName"`
	ProjectName    *string          `json:"projectName"`
	IssueDate      *time.Time       `json:"issueDate"`
	ExpiryDate     *time.Time       `json:"expiryDate"`
	Status         *status.Status   `json:"status"`
	Total          *decimal.Decimal `json:"total"`
	Currency       *string          `json:"currency"`
	Items          *[]LineItem      `json:"items"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
	TaxAmount      *decimal.Decimal `json:"taxAmount"`
	TaxRate        *decimal.Decimal `json:"taxRate"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	DiscountRate   *decimal.Decimal `json:"discountRate"`
}

func (p QuotePatch) apply(q *Quote) {
	if p.ClientName != nil {
		q.ClientName = *p.ClientName
	}
	if p.ProjectName != nil {
		q.ProjectName = *p.ProjectName
	}
	if p.IssueDate != nil {
		q.IssueDate = *p.IssueDate
	}
	if p.ExpiryDate != nil {
		q.ExpiryDate = *p.ExpiryDate
	}
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.Total != nil {
		q.Total = *p.Total
	}
	if p.Currency != nil {
		q.Currency = *p.Currency
	}
	if p.Items != nil {
		q.Items = *p.Items
	}
	if p.Subtotal != nil {
		q.Subtotal = *p.Subtotal
	}
	if p.TaxAmount != nil {
		q.TaxAmount = *p.TaxAmount
	}
	if p.TaxRate != nil {
		q.TaxRate = *p.TaxRate
	}
	if p.DiscountAmount != nil {
		q.DiscountAmount = *p.DiscountAmount
	}
	if p.DiscountRate != nil {
		q.DiscountRate = *p.DiscountRate
	}
}

// Activity types recorded on the trail.
const (
	ActivityCreated  = "created"
	ActivitySent     = "sent"
	ActivityViewed   = "viewed"
	ActivityAccepted = "accepted"
	ActivityRejected = "rejected"
	ActivityDeleted  = "deleted"
)

// Activity is an immutable trail entry. The identifier is derived from the
// creation timestamp: monotonic by creation order but not guaranteed unique
// under rapid succession, exactly like the tool it replaces.
type Activity struct {
	ID      int64     `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	QuoteID string    `json:"quoteId,omitempty"`
}

// Stats are derived on every read, never cached.
type Stats struct {
	Total    int             `json:"total"`
	Pending  int             `json:"pending"`
	Accepted int             `json:"accepted"`
	Revenue  decimal.Decimal `json:"revenue"`
}
