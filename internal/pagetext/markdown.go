package pagetext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/narratorprep/mstat/internal/book"
)

// MarkdownExtractor handles Markdown files using goldmark. Thematic breaks
// (---) act as page separators; headings are emitted as their own lines so
// the heading classifier can see them. Without thematic breaks, pages are
// synthesized from paragraphs.
type MarkdownExtractor struct {
	WordsPerPage int
}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) ([]book.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var pageParagraphs [][]string
	current := []string{}
	sawBreak := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.ThematicBreak:
			sawBreak = true
			pageParagraphs = append(pageParagraphs, current)
			current = []string{}
		case *ast.Heading:
			if title := string(node.Text(src)); title != "" {
				current = append(current, title)
			}
		default:
			if t := blockText(n, src); t != "" {
				current = append(current, t)
			}
		}
	}
	pageParagraphs = append(pageParagraphs, current)

	if !sawBreak {
		return synthesizePages(current, e.WordsPerPage), nil
	}

	pages := make([]book.Page, len(pageParagraphs))
	for i, paras := range pageParagraphs {
		pages[i] = book.Page{Index: i, Text: strings.Join(paras, "\n\n")}
	}
	return pages, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks carry
// their raw source lines; container blocks (lists, quotes) recurse.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
