package book

// Page is one page of extracted manuscript text. Indices are contiguous
// from 0 in extraction order; Text may be empty when nothing could be
// extracted for that page.
type Page struct {
	Index int    // 0-based position in the document
	Text  string // plain text content, "" when extraction failed
}

// Chapter is a contiguous, inclusive span of pages owned by one heading.
type Chapter struct {
	Title     string // raw heading line, or the canonical section label
	StartPage int    // 0-based index of the page carrying the heading
	EndPage   int    // 0-based index of the last page before the next heading
	Pages     []Page // pages belonging to this chapter, in order
}
