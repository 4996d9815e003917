package segment

import (
	"testing"

	"github.com/narratorprep/mstat/internal/book"
)

func TestStartPages_ResolvesFromDocumentStart(t *testing.T) {
	pages := mkPages(
		"Contents\n1. Chapter One ..... 3",
		"blank-ish page",
		"Chapter One\nThe story begins.",
		"continuation",
	)
	chapters := Split(pages)
	if len(chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(chapters))
	}

	resolved := StartPages(chapters, pages)
	got, ok := resolved["CHAPTER ONE"]
	if !ok {
		t.Fatalf("expected entry for %q, map: %v", "CHAPTER ONE", resolved)
	}
	// The table of contents on page 0 mentions the title first, so the
	// resolver reports page 1 even though the chapter starts on page 3.
	if got != 1 {
		t.Errorf("expected page 1, got %d", got)
	}
}

func TestStartPages_NotFound(t *testing.T) {
	pages := mkPages("Chapter One\ntext")
	chapters := []book.Chapter{
		{
			Title:     "ghost",
			StartPage: 0,
			EndPage:   0,
			Pages:     []book.Page{{Index: 0, Text: "No Such Heading Anywhere\nbody"}},
		},
	}

	resolved := StartPages(chapters, pages)
	got, ok := resolved["NO SUCH HEADING ANYWHERE"]
	if !ok {
		t.Fatalf("expected an explicit entry for the unresolved title, map: %v", resolved)
	}
	if got != PageNotFound {
		t.Errorf("expected PageNotFound, got %d", got)
	}
}

func TestStartPages_DuplicateTitleLaterWins(t *testing.T) {
	pages := mkPages(
		"Prologue\nfirst occurrence",
		"filler",
		"Prologue\nsecond occurrence",
	)
	chapters := Split(pages)
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}

	resolved := StartPages(chapters, pages)
	if len(resolved) != 1 {
		t.Fatalf("expected collapsed map of 1 entry, got %d", len(resolved))
	}
	// Both chapters derive the same candidate title and both scans find the
	// first occurrence; the later computation overwrites the earlier entry.
	if resolved["PROLOGUE"] != 1 {
		t.Errorf("expected page 1, got %d", resolved["PROLOGUE"])
	}
}

func TestStartPages_SkipsChapterWithoutPages(t *testing.T) {
	pages := mkPages("Chapter One\ntext")
	chapters := []book.Chapter{{Title: "empty", StartPage: 0, EndPage: 0}}
	if resolved := StartPages(chapters, pages); len(resolved) != 0 {
		t.Errorf("expected empty map, got %v", resolved)
	}
}
