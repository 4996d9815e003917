package pagetext

import "testing"

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"book.pdf", "*pagetext.PDFExtractor"},
		{"book.txt", "*pagetext.TextExtractor"},
		{"book.md", "*pagetext.MarkdownExtractor"},
		{"book.markdown", "*pagetext.MarkdownExtractor"},
		{"book.epub", "*pagetext.EPUBExtractor"},
		{"book.docx", "*pagetext.DOCXExtractor"},
		{"book.html", "*pagetext.HTMLExtractor"},
		{"BOOK.HTM", "*pagetext.HTMLExtractor"},
	}
	for _, tt := range tests {
		e, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tt.filename, err)
			continue
		}
		var got string
		switch e.(type) {
		case *PDFExtractor:
			got = "*pagetext.PDFExtractor"
		case *TextExtractor:
			got = "*pagetext.TextExtractor"
		case *MarkdownExtractor:
			got = "*pagetext.MarkdownExtractor"
		case *EPUBExtractor:
			got = "*pagetext.EPUBExtractor"
		case *DOCXExtractor:
			got = "*pagetext.DOCXExtractor"
		case *HTMLExtractor:
			got = "*pagetext.HTMLExtractor"
		}
		if got != tt.wantType {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, tt.wantType, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("book.xlsx", Options{}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("novel.epub") {
		t.Error("expected .epub to be supported")
	}
	if IsSupportedExtension("novel.exe") {
		t.Error("expected .exe to be unsupported")
	}
}
