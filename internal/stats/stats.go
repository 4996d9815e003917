// Package stats computes per-chapter size statistics from segmented spans.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/narratorprep/mstat/internal/book"
)

// wordPattern matches maximal alphanumeric tokens: "Hello, world!" has two.
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Summary is the document-level aggregate.
type Summary struct {
	ChapterCount int `json:"chapter_count"`
}

// ChapterStat is one reported row per chapter. Page numbers are 1-based for
// reporting. Failed marks a chapter whose aggregation could not complete; its
// page fields serialize as "?" and its word count as 0.
type ChapterStat struct {
	Chapter   int    `json:"chapter"`
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	PageCount int    `json:"page_count"`
	WordCount int    `json:"word_count"`
	Failed    bool   `json:"-"`
}

// MarshalJSON substitutes the "?" placeholder for page fields of a failed
// chapter so consumers see a complete row rather than a hole in the batch.
func (c ChapterStat) MarshalJSON() ([]byte, error) {
	if !c.Failed {
		type plain ChapterStat
		return json.Marshal(plain(c))
	}
	return json.Marshal(map[string]any{
		"chapter":    c.Chapter,
		"title":      c.Title,
		"start_page": "?",
		"end_page":   "?",
		"page_count": "?",
		"word_count": 0,
	})
}

// CountWords returns the number of word tokens in text.
func CountWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

// Aggregate computes one ChapterStat per chapter plus the document summary.
// A chapter that cannot be aggregated yields a placeholder entry; it never
// aborts the rest of the batch.
func Aggregate(chapters []book.Chapter) (Summary, []ChapterStat) {
	out := make([]ChapterStat, 0, len(chapters))
	for i, ch := range chapters {
		stat, err := chapterStat(i+1, ch)
		if err != nil {
			stat = ChapterStat{Chapter: i + 1, Title: ch.Title, Failed: true}
		}
		out = append(out, stat)
	}
	return Summary{ChapterCount: len(out)}, out
}

func chapterStat(number int, ch book.Chapter) (ChapterStat, error) {
	if len(ch.Pages) == 0 {
		return ChapterStat{}, errors.New("chapter has no pages")
	}
	if ch.EndPage < ch.StartPage {
		return ChapterStat{}, fmt.Errorf("inverted page range %d..%d", ch.StartPage, ch.EndPage)
	}

	texts := make([]string, 0, len(ch.Pages))
	for _, p := range ch.Pages {
		texts = append(texts, p.Text)
	}

	return ChapterStat{
		Chapter:   number,
		Title:     ch.Title,
		StartPage: ch.StartPage + 1,
		EndPage:   ch.EndPage + 1,
		PageCount: ch.EndPage - ch.StartPage + 1,
		WordCount: CountWords(strings.Join(texts, "\n")),
	}, nil
}
