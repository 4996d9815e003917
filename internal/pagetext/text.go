package pagetext

import (
	"fmt"
	"io"
	"strings"

	"github.com/narratorprep/mstat/internal/book"
)

// TextExtractor handles plain text files. Form feeds are honored as page
// separators; without them, pages are synthesized from paragraphs.
type TextExtractor struct {
	WordsPerPage int
}

func (e *TextExtractor) Extract(r io.Reader, filename string) ([]book.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	text := string(data)

	if strings.Contains(text, "\f") {
		chunks := strings.Split(text, "\f")
		pages := make([]book.Page, len(chunks))
		for i, chunk := range chunks {
			pages[i] = book.Page{Index: i, Text: strings.TrimSpace(chunk)}
		}
		return pages, nil
	}

	return synthesizePages(splitParagraphs(text), e.WordsPerPage), nil
}

// splitParagraphs breaks text on blank lines, keeping intra-paragraph
// newlines intact.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, "\n"))
	}

	return paragraphs
}
