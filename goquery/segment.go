package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cudev/htmlscrape"
	"golang.org/x/net/html"
)

// blockElements start a new text block.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"caption": true, "center": true, "dd": true, "details": true, "dialog": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"br": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// skippedElements never contribute text.
var skippedElements = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true,
	"template": true, "svg": true, "iframe": true, "object": true,
}

// Segments is a document split into text blocks.
type Segments struct {
	// Title is the text of the first <title> element, whitespace collapsed.
	Title string

	// Blocks are the non-empty text segments of the body in document order.
	Blocks []string
}

// SegmentBlocks parses HTML and splits the text of its body into blocks.
// Every block-level element starts a new block; inline content, anchor text
// included, accumulates into the current one.
func SegmentBlocks(rawHTML string) (*Segments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, htmlscrape.WrapError(htmlscrape.EPARSE, err, "failed to parse HTML")
	}

	root := doc.Find("body").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	s := &segmenter{blocks: []string{}}
	for _, n := range root.Nodes {
		s.walk(n)
	}
	s.flush()

	return &Segments{
		Title:  htmlscrape.NormalizeSpace(doc.Find("title").First().Text()),
		Blocks: s.blocks,
	}, nil
}

type segmenter struct {
	blocks []string
	cur    strings.Builder
}

func (s *segmenter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		s.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		if blockElements[n.Data] {
			s.flush()
			s.children(n)
			s.flush()
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	s.children(n)
}

func (s *segmenter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c)
	}
}

func (s *segmenter) flush() {
	text := htmlscrape.NormalizeSpace(s.cur.String())
	s.cur.Reset()
	if text != "" {
		s.blocks = append(s.blocks, text)
	}
}
