// Package analyzer ties retrieval, page-text extraction, segmentation and
// aggregation into one manuscript analysis run.
package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/narratorprep/mstat/internal/config"
	"github.com/narratorprep/mstat/internal/fetch"
	"github.com/narratorprep/mstat/internal/metrics"
	"github.com/narratorprep/mstat/internal/pagetext"
	"github.com/narratorprep/mstat/internal/segment"
	"github.com/narratorprep/mstat/internal/stats"
)

// Result is everything one analysis run produces. All of it is recomputed
// per run; nothing is persisted.
type Result struct {
	Summary    stats.Summary       `json:"summary"`
	Chapters   []stats.ChapterStat `json:"chapters"`
	StartPages map[string]int      `json:"start_pages"`
	PageCount  int                 `json:"page_count"`
}

// Analyzer runs manuscript analyses. The core scan is single-threaded; the
// only blocking operation is the remote fetch, which is fatal on failure.
type Analyzer struct {
	fetcher *fetch.Client
	runs    *metrics.RunStats
	log     *slog.Logger
	opts    pagetext.Options
}

func New(cfg config.Config, log *slog.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetch.NewClient(cfg.HTTPTimeout, cfg.MaxDownloadBytes),
		runs:    metrics.NewRunStats(cfg.RunStatsWindow),
		log:     log,
		opts: pagetext.Options{
			WordsPerPage:      cfg.WordsPerPage,
			FallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
	}
}

// Runs exposes rolling run latency stats.
func (a *Analyzer) Runs() *metrics.RunStats {
	return a.runs
}

// Close releases the fetch client.
func (a *Analyzer) Close() {
	a.fetcher.Close()
}

// Analyze processes a document named by a local path or an http(s) URL.
func (a *Analyzer) Analyze(ctx context.Context, source string) (*Result, error) {
	path := source
	if fetch.IsURL(source) {
		a.log.Info("downloading document", "url", source)
		tmpPath, err := a.fetcher.Download(ctx, source)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmpPath)
		path = tmpPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return a.analyze(f, filepath.Base(path))
}

// AnalyzeBytes processes uploaded document bytes, dispatching on filename.
func (a *Analyzer) AnalyzeBytes(ctx context.Context, data []byte, filename string) (*Result, error) {
	return a.analyze(bytes.NewReader(data), filename)
}

func (a *Analyzer) analyze(r io.Reader, filename string) (*Result, error) {
	start := time.Now()

	extractor, err := pagetext.ForFile(filename, a.opts)
	if err != nil {
		return nil, err
	}

	a.log.Info("extracting text", "file", filename)
	pages, err := extractor.Extract(r, filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	for _, p := range pages {
		if p.Text == "" {
			a.log.Warn("page has no extractable text", "page", p.Index+1)
		}
	}

	a.log.Info("splitting chapters", "pages", len(pages))
	chapters := segment.Split(pages)

	startPages := segment.StartPages(chapters, pages)

	a.log.Info("analyzing structure", "chapters", len(chapters))
	summary, chapterStats := stats.Aggregate(chapters)

	a.runs.Record(time.Since(start).Milliseconds())

	return &Result{
		Summary:    summary,
		Chapters:   chapterStats,
		StartPages: startPages,
		PageCount:  len(pages),
	}, nil
}
