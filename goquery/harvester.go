// Package goquery implements HTML traversal for htmlscrape using
// PuerkitoBio/goquery: link harvesting and text segmentation.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cudev/htmlscrape"
)

var _ htmlscrape.LinkHarvester = (*LinkHarvester)(nil)

// linkAttrs maps link-bearing elements to the attribute holding the target.
var linkAttrs = map[string]string{
	"a":      "href",
	"area":   "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"iframe": "src",
	"frame":  "src",
	"embed":  "src",
	"source": "src",
}

// LinkHarvester records every link-bearing element of a document in
// document order. Only <a> elements are flagged as anchors.
type LinkHarvester struct{}

// NewLinkHarvester creates a new LinkHarvester.
func NewLinkHarvester() *LinkHarvester {
	return &LinkHarvester{}
}

// HarvestLinks parses HTML and returns the link records in document order.
// URIs are returned as written, trimmed of surrounding whitespace.
func (h *LinkHarvester) HarvestLinks(html string) ([]htmlscrape.RawLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, htmlscrape.WrapError(htmlscrape.EPARSE, err, "failed to parse HTML")
	}

	var links []htmlscrape.RawLink
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		attr, ok := linkAttrs[tag]
		if !ok {
			return
		}
		uri, exists := sel.Attr(attr)
		if !exists {
			return
		}

		links = append(links, htmlscrape.RawLink{
			URI:      uri,
			Anchor:   tag == "a",
			Element:  tag,
			Text:     linkText(sel, tag),
			Rel:      sel.AttrOr("rel", ""),
			Position: len(links),
		})
	})

	return links, nil
}

// linkText returns the visible text of an anchor, or the alt/title
// attribute for elements without text content.
func linkText(sel *goquery.Selection, tag string) string {
	switch tag {
	case "a", "area":
		if text := htmlscrape.NormalizeSpace(sel.Text()); text != "" {
			return text
		}
	case "img":
		if alt := strings.TrimSpace(sel.AttrOr("alt", "")); alt != "" {
			return alt
		}
	}
	return strings.TrimSpace(sel.AttrOr("title", ""))
}
