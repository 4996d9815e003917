package segment

import (
	"regexp"
	"strings"
)

// MatchKind says what, if anything, a line was recognized as.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchChapter
	MatchSection
)

// Match is the result of classifying a single line.
type Match struct {
	Kind  MatchKind
	Title string // raw heading line for chapters, canonical label for sections
}

// chapterPattern recognizes "Chapter 12", "BOOK TWO", "chapter ix: the fall"
// and similar openings: a chapter/book keyword followed by a numeral,
// spelled-out word, or roman numeral, then anything.
var chapterPattern = regexp.MustCompile(`^(?i:(?:chapter|book)\s+(?:\d+|[a-z]+|[ivxlcdm]+)\b.*)`)

// sectionPatterns maps front/back-matter openings to canonical labels.
// Order is load-bearing: patterns are tried in sequence after the chapter
// pattern, and the first match wins.
var sectionPatterns = []struct {
	Label   string
	Pattern *regexp.Regexp
}{
	{"Prologue", regexp.MustCompile(`^(?i:prologue)\b`)},
	{"Epilogue", regexp.MustCompile(`^(?i:epilogue)\b`)},
	{"Acknowledgements", regexp.MustCompile(`^(?i:acknowledg(e)?ments)\b`)},
	{"Dedication", regexp.MustCompile(`^(?i:dedication)\b`)},
	{"Character List", regexp.MustCompile(`^(?i:character list)\b`)},
	{"About the Author", regexp.MustCompile(`^(?i:about the author)\b`)},
	{"Also by the Author", regexp.MustCompile(`^(?i:also by the author)\b`)},
	{"Thank You", regexp.MustCompile(`^(?i:thank you)\b`)},
}

// Classify decides whether a single trimmed line opens a chapter or a named
// section. The chapter pattern is always tested before the section table.
// Blank and unrecognized lines return MatchNone.
func Classify(line string) Match {
	line = strings.TrimSpace(line)
	if line == "" {
		return Match{Kind: MatchNone}
	}
	if chapterPattern.MatchString(line) {
		return Match{Kind: MatchChapter, Title: line}
	}
	for _, sp := range sectionPatterns {
		if sp.Pattern.MatchString(line) {
			return Match{Kind: MatchSection, Title: sp.Label}
		}
	}
	return Match{Kind: MatchNone}
}
