// Package pdftext turns statement documents into plain text. PDF extraction
// uses github.com/ledongthuc/pdf; anything else is read as UTF-8 text. The
// engine never sees page structure, only a page-concatenated blob.
package pdftext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Veraticus/ledger-sieve/internal/common"
)

// Extractor implements service.TextSource for local statement files.
type Extractor struct{}

// New creates a text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Text reads a statement file into a single text blob. Extraction failures
// surface as errors wrapping common.ErrUnreadableDocument and isolate to the
// one document.
func (e *Extractor) Text(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrUnreadableDocument, path, err)
	}
	return string(data), nil
}

func extractPDF(path string) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: pdf library panic: %v", common.ErrUnreadableDocument, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrUnreadableDocument, path, err)
	}
	defer func() { _ = f.Close() }()

	text = extractByRow(reader)
	if readable(text) {
		return text, nil
	}

	// Some PDFs yield nothing row-wise; the whole-document path uses a
	// different decode strategy.
	text = extractPlain(reader)
	if readable(text) {
		return text, nil
	}

	return "", fmt.Errorf("%w: %s: no readable text (image-based or custom-encoded PDF?)", common.ErrUnreadableDocument, path)
}

// extractByRow reconstructs lines per page, which preserves the row layout
// that institution patterns depend on.
func extractByRow(reader *pdf.Reader) string {
	var pages []string

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}

	return strings.Join(pages, "\n")
}

func extractPlain(reader *pdf.Reader) string {
	r, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readable rejects extraction output that is mostly garbage, which the pdf
// library produces for identity-encoded fonts rather than failing.
func readable(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}

	total, ok := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			ok++
		case r == ' ' || r == '\n' || r == '\t' || r == '\r':
			ok++
		case strings.ContainsRune(".,-/:;()'\"$&%+*#@!?=", r):
			ok++
		}
	}
	return float64(ok)/float64(total) > 0.6
}
