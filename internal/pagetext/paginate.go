package pagetext

import (
	"strings"

	"github.com/narratorprep/mstat/internal/book"
	"github.com/narratorprep/mstat/internal/segment"
)

const defaultWordsPerPage = 300

// synthesizePages groups paragraphs into pages of roughly wordsPerPage words
// for formats that carry no pagination of their own. A paragraph that opens
// with a heading line always starts a fresh page, so one synthetic page never
// swallows two chapter boundaries.
func synthesizePages(paragraphs []string, wordsPerPage int) []book.Page {
	if wordsPerPage <= 0 {
		wordsPerPage = defaultWordsPerPage
	}

	var pages []book.Page
	var current []string
	currentWords := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		pages = append(pages, book.Page{
			Index: len(pages),
			Text:  strings.Join(current, "\n\n"),
		})
		current = nil
		currentWords = 0
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if opensHeading(para) {
			flush()
		}

		words := len(strings.Fields(para))
		if currentWords > 0 && currentWords+words > wordsPerPage {
			flush()
		}
		current = append(current, para)
		currentWords += words
	}
	flush()

	return pages
}

func opensHeading(paragraph string) bool {
	line, _, _ := strings.Cut(paragraph, "\n")
	return segment.Classify(line).Kind != segment.MatchNone
}
