// Package readability implements htmlscrape.Extractor on top of go-readability.
package readability

import (
	"strings"

	"github.com/cudev/htmlscrape"
	"github.com/cudev/htmlscrape/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements htmlscrape.Extractor at compile time.
var _ htmlscrape.Extractor = (*Extractor)(nil)

// Extractor classifies page text with go-readability. Blocks whose text is
// part of the readable article are tagged as content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns every text block of the page.
func (e *Extractor) Extract(rawHTML string) (*htmlscrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, htmlscrape.Errorf(htmlscrape.EPARSE, "empty HTML input")
	}

	seg, err := goquery.SegmentBlocks(rawHTML)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, htmlscrape.WrapError(htmlscrape.EPARSE, err, "readability failed")
	}

	title := seg.Title
	if title == "" {
		title = article.Title
	}

	return &htmlscrape.ExtractResult{
		Title:       title,
		Blocks:      htmlscrape.ClassifyBlocks(seg.Blocks, article.TextContent),
		ContentHTML: article.Content,
	}, nil
}
