package pagetext

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/narratorprep/mstat/internal/book"
)

// EPUBExtractor handles EPUB files. Each spine item becomes one page, which
// keeps chapter-per-file EPUBs aligned with heading boundaries. A spine item
// that cannot be read contributes an empty page.
type EPUBExtractor struct{}

func (e *EPUBExtractor) Extract(r io.Reader, filename string) ([]book.Page, error) {
	// The epub reader needs a zip archive on disk.
	tmp, err := os.CreateTemp("", "mstat-epub-*.epub")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	rc, err := epub.OpenReader(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	var pages []book.Page
	for _, ref := range rc.Rootfiles[0].Spine.Itemrefs {
		text := ""
		if ref.Item != nil {
			if item, err := ref.Item.Open(); err == nil {
				if data, err := io.ReadAll(item); err == nil {
					text = spineItemText(string(data))
				}
				item.Close()
			}
		}
		pages = append(pages, book.Page{Index: len(pages), Text: text})
	}

	return pages, nil
}

// spineItemText renders one XHTML spine item as plain text, one paragraph per
// block element, so headings land on their own lines.
func spineItemText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}
	return strings.Join(blockParagraphs(doc), "\n")
}
