// Package fetch retrieves remote documents over HTTP before extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Client downloads documents to temporary files. Any non-success status is
// fatal to the whole run; there are no retries.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewClient(timeout time.Duration, maxBytes int64) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
}

// IsURL reports whether source names a remote document.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Download GETs rawURL into a temp file and returns its path. The caller owns
// the file and removes it when done.
func (c *Client) Download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "mstat-*"+extFromURL(rawURL))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	body := resp.Body
	if c.maxBytes > 0 {
		body = io.NopCloser(io.LimitReader(resp.Body, c.maxBytes+1))
	}
	n, err := io.Copy(tmp, body)
	tmp.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if c.maxBytes > 0 && n > c.maxBytes {
		os.Remove(tmpPath)
		return "", fmt.Errorf("download %s: exceeds max size (%d bytes)", rawURL, c.maxBytes)
	}

	return tmpPath, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// extFromURL guesses a file extension for the temp file so the extractor
// dispatch can pick the right format. Unknown URLs default to .pdf.
func extFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".pdf"
	}
	if ext := strings.ToLower(path.Ext(u.Path)); ext != "" {
		return ext
	}
	return ".pdf"
}
