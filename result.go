package htmlscrape

import (
	"fmt"
	"strings"
)

// BlockPolicy selects which classified text blocks end up in a ScrapeResult.
type BlockPolicy string

// Block policies.
const (
	// AllBlocks keeps every block, boilerplate included.
	AllBlocks BlockPolicy = "all"

	// ContentBlocks keeps only blocks classified as main content.
	ContentBlocks BlockPolicy = "content"
)

// Validate returns an error if the policy is unknown.
// The zero value is valid and behaves like AllBlocks.
func (p BlockPolicy) Validate() error {
	switch p {
	case "", AllBlocks, ContentBlocks:
		return nil
	}
	return Errorf(EINVALID, "unknown block policy %q", string(p))
}

// ScrapeResult is the outcome of scraping one page.
// It is built once by Assemble and not modified afterwards.
type ScrapeResult struct {
	URL        string   `json:"url"`
	Title      string   `json:"title,omitempty"`
	Digest     string   `json:"digest,omitempty"`
	TextBlocks []string `json:"textBlocks"`
	Links      []Link   `json:"links"`

	// ContentHTML is the main content HTML, used for Markdown output.
	ContentHTML string `json:"-"`
}

// HasTitle reports whether the page metadata provided a title.
func (r *ScrapeResult) HasTitle() bool {
	return r.Title != ""
}

// String returns the one-line summary of the result.
func (r *ScrapeResult) String() string {
	return fmt.Sprintf("Results{ %s <%s>: %d links, %d textBlocks }",
		r.Title, r.URL, len(r.Links), len(r.TextBlocks))
}

// AssembleOptions configures Assemble.
type AssembleOptions struct {
	Blocks BlockPolicy

	// Digest identifies the fetched document. Optional.
	Digest string
}

// Assemble builds a ScrapeResult from extractor and link harvester output.
//
// Text blocks keep document order and are filtered only by opts.Blocks.
// Links are kept when they come from an anchor, have a non-empty URI and
// are not fragment-only; duplicates by exact URI are dropped, keeping the
// first occurrence.
func Assemble(url string, ext *ExtractResult, links []RawLink, opts AssembleOptions) (*ScrapeResult, error) {
	if url == "" {
		return nil, Errorf(EINVALID, "url required")
	}
	if ext == nil {
		return nil, Errorf(EPARSE, "no extraction result for %s", url)
	}
	if err := opts.Blocks.Validate(); err != nil {
		return nil, err
	}

	return &ScrapeResult{
		URL:         url,
		Title:       ext.Title,
		Digest:      opts.Digest,
		TextBlocks:  selectBlocks(ext.Blocks, opts.Blocks),
		Links:       selectLinks(links),
		ContentHTML: ext.ContentHTML,
	}, nil
}

func selectBlocks(blocks []TextBlock, policy BlockPolicy) []string {
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if policy == ContentBlocks && !b.IsContent {
			continue
		}
		texts = append(texts, b.Text)
	}
	return texts
}

func selectLinks(raw []RawLink) []Link {
	seen := make(map[string]struct{})
	links := make([]Link, 0, len(raw))
	for _, l := range raw {
		if !IsAnchorLink(l) {
			continue
		}
		if _, ok := seen[l.URI]; ok {
			continue
		}
		seen[l.URI] = struct{}{}
		links = append(links, Link{URI: l.URI, Text: l.Text})
	}
	return links
}

// IsAnchorLink reports whether l is an <a> link with a non-empty,
// non fragment-only URI.
func IsAnchorLink(l RawLink) bool {
	return l.Anchor && l.URI != "" && !strings.HasPrefix(l.URI, "#")
}
