package export

import (
	"errors"
	"fmt"
	"log"

	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/profile"
	"quotefolio/api/internal/templates"
)

// Service renders quote previews. HTML always works; PDF prefers headless
// Chrome and silently degrades to the direct gofpdf renderer.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Render(q ledger.Quote, tmpl templates.Template, prof profile.Profile, format string) (*Result, error) {
	switch format {
	case FormatHTML, "":
		data, err := renderHTML(q, tmpl, prof)
		if err != nil {
			return nil, err
		}
		return &Result{
			Data:     data,
			Filename: sanitizeFilename(q.ProjectName) + ".html",
			MimeType: "text/html; charset=utf-8",
		}, nil

	case FormatPDF:
		html, err := renderHTML(q, tmpl, prof)
		if err != nil {
			return nil, err
		}
		data, err := chromePDF(string(html))
		if errors.Is(err, ErrPDFDependencyMissing) {
			log.Printf("export: chromium unavailable, using direct renderer")
			data, err = fallbackPDF(q, prof)
		}
		if err != nil {
			return nil, err
		}
		return &Result{
			Data:     data,
			Filename: sanitizeFilename(q.ProjectName) + ".pdf",
			MimeType: "application/pdf",
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
