// Package pdftext reads the text layer of insertion-order PDFs page by page.
// It uses ledongthuc/pdf (pure Go, no CGO); everything downstream works on
// plain strings so the pipeline is testable without PDF fixtures.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Extractor yields page-ordered text for a document.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// File reads a PDF from disk.
type File struct{}

func (File) Extract(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable pages keep their slot so page indexes stay stable.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, Normalize(text))
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}
	return pages, nil
}

// Normalize folds extracted text to NFC and unifies line endings. Agency
// exports mix composed and decomposed accents, which breaks the classifiers'
// substring checks.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
