// Package pagetext extracts an ordered sequence of per-page plain texts from
// manuscript files. Page indices are contiguous from 0; a page whose content
// cannot be extracted contributes an empty string so indexing is preserved.
package pagetext

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/narratorprep/mstat/internal/book"
)

// Extractor converts raw document bytes into ordered pages.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]book.Page, error)
}

// Options tune extraction across formats.
type Options struct {
	// WordsPerPage is the synthetic page size for formats without intrinsic
	// pagination (markdown, docx, html, plain text without form feeds).
	WordsPerPage int
	// FallbackPdftotext shells out to pdftotext when the Go PDF library fails.
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".epub":     true,
	".docx":     true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".txt":
		return &TextExtractor{WordsPerPage: opts.WordsPerPage}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{WordsPerPage: opts.WordsPerPage}, nil
	case ".epub":
		return &EPUBExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{WordsPerPage: opts.WordsPerPage}, nil
	case ".html", ".htm":
		return &HTMLExtractor{WordsPerPage: opts.WordsPerPage}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
