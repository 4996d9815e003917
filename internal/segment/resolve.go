package segment

import (
	"strings"

	"github.com/narratorprep/mstat/internal/book"
)

// PageNotFound marks a candidate title that appears on no page.
const PageNotFound = 0

// StartPages independently resolves each chapter's title to the first page
// whose text contains it. The candidate title is the first line of the
// chapter's first page, trimmed and uppercased; the scan always starts from
// the beginning of the document, not from the chapter itself. Resolved page
// numbers are 1-based; PageNotFound records a miss.
//
// When two chapters share an identical first line the later resolution
// overwrites the earlier map entry. Known limitation, kept as-is.
func StartPages(chapters []book.Chapter, pages []book.Page) map[string]int {
	resolved := make(map[string]int, len(chapters))

	for _, ch := range chapters {
		if len(ch.Pages) == 0 {
			continue
		}
		lines := strings.Split(strings.TrimSpace(ch.Pages[0].Text), "\n")
		title := strings.ToUpper(strings.TrimSpace(lines[0]))
		if title == "" {
			continue
		}

		resolved[title] = PageNotFound
		for _, page := range pages {
			if strings.Contains(strings.ToUpper(page.Text), title) {
				resolved[title] = page.Index + 1
				break
			}
		}
	}

	return resolved
}
