package pagetext

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/narratorprep/mstat/internal/book"
)

// HTMLExtractor handles HTML files. Headings and block elements become
// paragraphs; pages are synthesized since HTML has no pagination.
type HTMLExtractor struct {
	WordsPerPage int
}

func (e *HTMLExtractor) Extract(r io.Reader, filename string) ([]book.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return synthesizePages(blockParagraphs(doc), e.WordsPerPage), nil
}

// blockParagraphs walks an HTML document and flattens headings and block
// content elements into an ordered paragraph list.
func blockParagraphs(doc *html.Node) []string {
	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if headingLevel(n.Data) > 0 {
				if t := textContent(n); t != "" {
					paragraphs = append(paragraphs, t)
				}
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				if t := textContent(n); t != "" {
					paragraphs = append(paragraphs, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return paragraphs
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent collects the text nodes under n, space-joined.
func textContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
