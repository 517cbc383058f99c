package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/money"
	"quotefolio/api/internal/profile"
	"quotefolio/api/internal/status"
	"quotefolio/api/internal/templates"
)

// styleSheets carries the per-template CSS; the token mirrors the catalog's
// preview classes.
var styleSheets = map[string]string{
	"minimal": `
		body { font-family: Helvetica, Arial, sans-serif; color: #111827; background: #ffffff; }
		.quote { border: 1px solid #e5e7eb; padding: 2.5rem; }
		h1 { font-weight: 300; letter-spacing: 0.05em; }
		table { border-collapse: collapse; width: 100%; }
		th { text-align: left; border-bottom: 1px solid #e5e7eb; padding: 0.5rem 0; font-weight: 500; }
		td { padding: 0.5rem 0; border-bottom: 1px solid #f3f4f6; }`,
	"creative": `
		body { font-family: Verdana, sans-serif; color: #312e81; background: #eef2ff; }
		.quote { border: 2px solid #c7d2fe; border-radius: 12px; padding: 2rem; background: #ffffff; }
		h1 { color: #4f46e5; }
		table { border-collapse: collapse; width: 100%; }
		th { text-align: left; background: #eef2ff; padding: 0.5rem; }
		td { padding: 0.5rem; border-bottom: 1px dashed #c7d2fe; }`,
	"corporate": `
		body { font-family: Georgia, serif; color: #0f172a; background: #f8fafc; }
		.quote { border: 1px solid #cbd5e1; padding: 2rem; background: #ffffff; }
		h1 { text-transform: uppercase; font-size: 1.4rem; border-bottom: 3px solid #0f172a; }
		table { border-collapse: collapse; width: 100%; }
		th { text-align: left; border: 1px solid #cbd5e1; padding: 0.5rem; background: #f1f5f9; }
		td { padding: 0.5rem; border: 1px solid #e2e8f0; }`,
}

const quoteTemplateHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Cotización {{.Quote.ID}}</title>
<style>{{.Style}}
.accent { color: {{.BrandColor}}; }
.totals td { border: none; }
.totals .label { text-align: right; font-weight: bold; }
</style>
</head>
<body>
<div class="quote">
  <h1 class="accent">{{.Company}}</h1>
  <p>{{.Profile.Name}} · {{.Profile.Email}} · {{.Profile.Phone}}</p>
  <h2>{{.Quote.ProjectName}}</h2>
  <p>Cliente: <strong>{{.Quote.ClientName}}</strong></p>
  <p>Cotización #{{.Quote.ID}} · Estado: {{.StatusLabel}}</p>
  <p>Fecha de emisión: {{formatDate .Quote.IssueDate}}{{if not .Quote.ExpiryDate.IsZero}} · Válida hasta: {{formatDate .Quote.ExpiryDate}}{{end}}</p>
  <table>
    <thead>
      <tr><th>Concepto</th><th>Cantidad</th><th>Precio</th><th>Importe</th></tr>
    </thead>
    <tbody>
      {{range .Quote.Items}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Quantity}}</td>
        <td>{{amount .Price}}</td>
        <td>{{amount .Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <table class="totals">
    <tr><td class="label">Subtotal</td><td>{{amount .Quote.Subtotal}}</td></tr>
    {{if not .Quote.TaxAmount.IsZero}}<tr><td class="label">Impuestos ({{.Quote.TaxRate}}%)</td><td>{{amount .Quote.TaxAmount}}</td></tr>{{end}}
    {{if not .Quote.DiscountAmount.IsZero}}<tr><td class="label">Descuento ({{.Quote.DiscountRate}}%)</td><td>-{{amount .Quote.DiscountAmount}}</td></tr>{{end}}
    <tr><td class="label">Total</td><td class="accent"><strong>{{amount .Quote.Total}}</strong></td></tr>
  </table>
</div>
</body>
</html>`

type templateData struct {
	Quote       ledger.Quote
	Profile     profile.Profile
	Company     string
	BrandColor  template.CSS
	Style       template.CSS
	StatusLabel string
}

func renderHTML(q ledger.Quote, tmpl templates.Template, prof profile.Profile) ([]byte, error) {
	funcMap := template.FuncMap{
		"amount": func(d decimal.Decimal) string {
			return money.FormatAmount(d, q.Currency)
		},
		"formatDate": func(t time.Time) string {
			return money.FormatDate(t)
		},
	}

	parsed, err := template.New("quote").Funcs(funcMap).Parse(quoteTemplateHTML)
	if err != nil {
		return nil, fmt.Errorf("parse quote template: %w", err)
	}

	style, ok := styleSheets[tmpl.ID]
	if !ok {
		style = styleSheets["minimal"]
	}

	company := prof.Company
	if company == "" {
		company = prof.Name
	}

	data := templateData{
		Quote:       q,
		Profile:     prof,
		Company:     company,
		BrandColor:  template.CSS(prof.BrandColor),
		Style:       template.CSS(style),
		StatusLabel: status.Label(q.Status),
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute quote template: %w", err)
	}
	return buf.Bytes(), nil
}
