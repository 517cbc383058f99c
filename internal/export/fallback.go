package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/money"
	"quotefolio/api/internal/profile"
	"quotefolio/api/internal/status"
)

// fallbackPDF renders the quote directly with gofpdf when no chromium is
// available. Core fonts only, so Spanish text goes through the cp1252
// translator.
func fallbackPDF(q ledger.Quote, prof profile.Profile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Cotización", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	company := prof.Company
	if company == "" {
		company = prof.Name
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(company))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Cotización #%s · %s", q.ID, status.Label(q.Status))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Cliente: %s", q.ClientName)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Proyecto: %s", q.ProjectName)))
	pdf.Ln(6)
	if !q.IssueDate.IsZero() {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Emitida: %s", money.FormatShortDate(q.IssueDate))))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, tr("Concepto"))
	pdf.Cell(25, 7, tr("Cantidad"))
	pdf.Cell(35, 7, tr("Precio"))
	pdf.Cell(35, 7, tr("Importe"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range q.Items {
		pdf.Cell(90, 6, tr(trim(item.Name, 50)))
		pdf.Cell(25, 6, item.Quantity.String())
		pdf.Cell(35, 6, tr(money.FormatAmount(item.Price, q.Currency)))
		pdf.Cell(35, 6, tr(money.FormatAmount(item.Total, q.Currency)))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Subtotal: %s", money.FormatAmount(q.Subtotal, q.Currency))))
	pdf.Ln(6)
	if !q.TaxAmount.IsZero() {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Impuestos (%s%%): %s", q.TaxRate, money.FormatAmount(q.TaxAmount, q.Currency))))
		pdf.Ln(6)
	}
	if !q.DiscountAmount.IsZero() {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Descuento (%s%%): -%s", q.DiscountRate, money.FormatAmount(q.DiscountAmount, q.Currency))))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Total: %s", money.FormatAmount(q.Total, q.Currency))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gofpdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
