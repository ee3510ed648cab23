// Package trafilatura implements htmlscrape.Extractor on top of go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/cudev/htmlscrape"
	"github.com/cudev/htmlscrape/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements htmlscrape.Extractor at compile time.
var _ htmlscrape.Extractor = (*Extractor)(nil)

// Extractor classifies page text with go-trafilatura. Blocks whose text
// trafilatura keeps as main content are tagged as content; the rest of the
// page is boilerplate.
type Extractor struct {
	fallback bool
	language string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles trafilatura's readability and dom-distiller fallback
// extractors. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// WithTargetLanguage rejects pages whose declared language is not lang,
// an ISO 639-1 code such as "en".
func WithTargetLanguage(lang string) Option {
	return func(e *Extractor) {
		e.language = lang
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns every text block of the page.
//
// A page on which trafilatura finds no main content is not an error: all of
// its blocks are returned as boilerplate.
func (e *Extractor) Extract(rawHTML string) (*htmlscrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, htmlscrape.Errorf(htmlscrape.EPARSE, "empty HTML input")
	}

	seg, err := goquery.SegmentBlocks(rawHTML)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
		TargetLanguage: e.language,
	}

	var mainText, contentHTML, metaTitle string
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	switch {
	case err != nil && !isNoContent(err):
		return nil, htmlscrape.WrapError(htmlscrape.EPARSE, err, "extracting main content")
	case err == nil && result != nil:
		mainText = result.ContentText
		metaTitle = result.Metadata.Title
		if result.ContentNode != nil {
			contentHTML, err = renderNode(result.ContentNode)
			if err != nil {
				return nil, htmlscrape.WrapError(htmlscrape.EPARSE, err, "rendering main content")
			}
		}
	}

	title := seg.Title
	if title == "" {
		title = metaTitle
	}

	return &htmlscrape.ExtractResult{
		Title:       title,
		Blocks:      htmlscrape.ClassifyBlocks(seg.Blocks, mainText),
		ContentHTML: contentHTML,
	}, nil
}

// isNoContent reports whether trafilatura gave up because the page holds too
// little text to call main content. go-trafilatura has no sentinel error
// for this case.
func isNoContent(err error) bool {
	return strings.HasPrefix(err.Error(), "text and comments are not long enough")
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
