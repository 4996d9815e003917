package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/narratorprep/mstat/internal/analyzer"
	"github.com/narratorprep/mstat/internal/config"
	"github.com/narratorprep/mstat/internal/stats"
)

func main() {
	showStartPages := flag.Bool("start-pages", false, "print resolved chapter start pages")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()

	source := flag.Arg(0)
	if source == "" {
		source = promptSource(cfg.DefaultSource)
	}

	a := analyzer.New(cfg, log)
	defer a.Close()

	res, err := a.Analyze(context.Background(), source)
	if err != nil {
		log.Error("analysis failed", "source", source, "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Document stats: %d chapters across %d pages\n\n", res.Summary.ChapterCount, res.PageCount)
	fmt.Println(chapterTable(res.Chapters))

	if *showStartPages {
		fmt.Println()
		fmt.Println(startPageTable(res.StartPages))
	}
}

func promptSource(fallback string) string {
	fmt.Print("Enter document URL or local file path: ")
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			return s
		}
	}
	return fallback
}

var tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func chapterTable(chapters []stats.ChapterStat) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers("CHAPTER", "TITLE", "START", "END", "PAGES", "WORDS")

	for _, ch := range chapters {
		if ch.Failed {
			t.Row(strconv.Itoa(ch.Chapter), ch.Title, "?", "?", "?", "0")
			continue
		}
		t.Row(
			strconv.Itoa(ch.Chapter),
			ch.Title,
			strconv.Itoa(ch.StartPage),
			strconv.Itoa(ch.EndPage),
			strconv.Itoa(ch.PageCount),
			strconv.Itoa(ch.WordCount),
		)
	}
	return t
}

func startPageTable(startPages map[string]int) *table.Table {
	titles := make([]string, 0, len(startPages))
	for title := range startPages {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers("TITLE", "FIRST PAGE")

	for _, title := range titles {
		page := "?"
		if startPages[title] > 0 {
			page = strconv.Itoa(startPages[title])
		}
		t.Row(title, page)
	}
	return t
}
