package stats

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/narratorprep/mstat/internal/book"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Hello, world!", 2},
		{"", 0},
		{"one", 1},
		{"hyphen-ated words count twice", 5},
		{"  spaced   out  ", 2},
		{"1984 was a year", 4},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func TestAggregate_BasicCounts(t *testing.T) {
	chapters := []book.Chapter{
		{
			Title:     "Chapter One",
			StartPage: 2,
			EndPage:   3,
			Pages: []book.Page{
				{Index: 2, Text: "Chapter One\nfour more words here"},
				{Index: 3, Text: "and three more"},
			},
		},
	}

	summary, out := Aggregate(chapters)
	if summary.ChapterCount != 1 {
		t.Fatalf("expected chapter count 1, got %d", summary.ChapterCount)
	}
	st := out[0]
	if st.Chapter != 1 {
		t.Errorf("expected chapter number 1, got %d", st.Chapter)
	}
	if st.StartPage != 3 || st.EndPage != 4 {
		t.Errorf("expected 1-based pages 3..4, got %d..%d", st.StartPage, st.EndPage)
	}
	if st.PageCount != 2 {
		t.Errorf("expected page count 2, got %d", st.PageCount)
	}
	if st.WordCount != 9 {
		t.Errorf("expected word count 9, got %d", st.WordCount)
	}
}

func TestAggregate_FailedChapterGetsPlaceholderAndBatchContinues(t *testing.T) {
	chapters := []book.Chapter{
		{Title: "broken", StartPage: 5, EndPage: 2}, // no pages, inverted range
		{
			Title:     "Chapter Two",
			StartPage: 6,
			EndPage:   6,
			Pages:     []book.Page{{Index: 6, Text: "Chapter Two\nwords"}},
		},
	}

	summary, out := Aggregate(chapters)
	if summary.ChapterCount != 2 {
		t.Fatalf("expected chapter count 2, got %d", summary.ChapterCount)
	}

	if !out[0].Failed {
		t.Error("expected first chapter to be marked failed")
	}
	if out[0].Title != "broken" {
		t.Errorf("expected failed chapter to keep its title, got %q", out[0].Title)
	}
	if out[0].WordCount != 0 {
		t.Errorf("expected word count 0 for failed chapter, got %d", out[0].WordCount)
	}

	if out[1].Failed {
		t.Error("expected second chapter to aggregate normally")
	}
	if out[1].Chapter != 2 {
		t.Errorf("expected chapter number 2, got %d", out[1].Chapter)
	}
	if out[1].WordCount != 3 {
		t.Errorf("expected word count 3, got %d", out[1].WordCount)
	}
}

func TestChapterStat_FailedMarshalsPlaceholders(t *testing.T) {
	st := ChapterStat{Chapter: 4, Title: "bad", Failed: true}
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"start_page":"?"`, `"end_page":"?"`, `"page_count":"?"`, `"word_count":0`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestChapterStat_SuccessMarshalsNumbers(t *testing.T) {
	st := ChapterStat{Chapter: 1, Title: "ok", StartPage: 1, EndPage: 2, PageCount: 2, WordCount: 10}
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), `"?"`) {
		t.Errorf("unexpected placeholder in %s", data)
	}
	if !strings.Contains(string(data), `"start_page":1`) {
		t.Errorf("expected numeric start_page in %s", data)
	}
}
