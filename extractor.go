package htmlscrape

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextBlock is a segment of page text tagged by the extraction library as
// main content or boilerplate.
type TextBlock struct {
	Text      string
	IsContent bool
}

// ExtractResult holds what an Extractor found in an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	// Empty if the document has none.
	Title string

	// Blocks are the text segments of the whole page in document order,
	// boilerplate included.
	Blocks []TextBlock

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor segments HTML into classified text blocks and reads page metadata.
type Extractor interface {
	// Extract processes raw HTML. It fails with EPARSE if the input cannot
	// be processed.
	Extract(html string) (*ExtractResult, error)
}

// ClassifyBlocks tags each segment as content if its text occurs as whole
// words within mainText, the main content reported by a boilerplate removal
// library. Whitespace is collapsed on both sides before comparing. Segments
// keep their order.
func ClassifyBlocks(segments []string, mainText string) []TextBlock {
	main := NormalizeSpace(mainText)
	blocks := make([]TextBlock, 0, len(segments))
	for _, seg := range segments {
		blocks = append(blocks, TextBlock{
			Text:      seg,
			IsContent: containsWords(main, NormalizeSpace(seg)),
		})
	}
	return blocks
}

// containsWords reports whether sub occurs in s with no word character
// directly before or after it, so "Home" does not match "homepage".
func containsWords(s, sub string) bool {
	if s == "" || sub == "" {
		return false
	}
	for from := 0; from <= len(s)-len(sub); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(sub)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// NormalizeSpace trims s and collapses every run of whitespace to one space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
