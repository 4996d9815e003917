// Package segment turns a flat ordered sequence of page texts into an
// ordered list of non-overlapping chapter spans using heading heuristics.
package segment

import (
	"strings"

	"github.com/narratorprep/mstat/internal/book"
)

// Split scans pages in index order and cuts the document at heading lines.
//
// At most one boundary is detected per page: the first line that classifies
// as a heading closes any open chapter at the previous page and opens a new
// one seeded with the current page, and the rest of the page's lines are not
// examined. Pages before the first detected heading belong to no chapter and
// are dropped. The trailing chapter is closed at the last page of the input.
func Split(pages []book.Page) []book.Chapter {
	var chapters []book.Chapter
	var open *book.Chapter

	for _, page := range pages {
		matched := false
		for _, line := range strings.Split(page.Text, "\n") {
			m := Classify(line)
			if m.Kind == MatchNone {
				continue
			}
			matched = true
			if open != nil {
				open.EndPage = page.Index - 1
				chapters = append(chapters, *open)
			}
			open = &book.Chapter{
				Title:     m.Title,
				StartPage: page.Index,
				Pages:     []book.Page{page},
			}
			break
		}
		if !matched && open != nil {
			open.Pages = append(open.Pages, page)
		}
	}

	if open != nil {
		open.EndPage = pages[len(pages)-1].Index
		chapters = append(chapters, *open)
	}

	return chapters
}
