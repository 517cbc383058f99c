// Package export renders quote previews with the active visual template.
package export

import "errors"

const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Result is a rendered preview ready to be served or downloaded.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	ErrUnsupportedFormat    = errors.New("export: unsupported format")
	ErrPDFDependencyMissing = errors.New("export: pdf rendering dependency missing")
)
