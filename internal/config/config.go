package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth: when empty, API endpoints are open.
	APIKey string

	// Remote retrieval
	HTTPTimeout      time.Duration
	MaxDownloadBytes int64

	// CLI fallback when the prompt is left empty.
	DefaultSource string

	// Synthetic pagination for formats without intrinsic pages.
	WordsPerPage int

	// PDF
	PDFFallbackPdftotext bool

	// Analysis service worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration

	// Rolling window for run latency stats.
	RunStatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("MSTAT_API_KEY"),

		HTTPTimeout:      envDuration("HTTP_TIMEOUT", 60*time.Second),
		MaxDownloadBytes: envInt64("MAX_DOWNLOAD_BYTES", 104857600), // 100MB

		DefaultSource: envOr("DEFAULT_SOURCE", "manuscript.pdf"),

		WordsPerPage: envInt("WORDS_PER_PAGE", 300),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		RunStatsWindow: envDuration("RUN_STATS_WINDOW", 1*time.Hour),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	if cfg.MaxDownloadBytes <= 0 {
		cfg.MaxDownloadBytes = 104857600
	}
	if cfg.WordsPerPage <= 0 {
		cfg.WordsPerPage = 300
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.RunStatsWindow <= 0 {
		cfg.RunStatsWindow = 1 * time.Hour
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
