// Package scrape runs the single-page pipeline: fetch, extract, harvest
// links, assemble.
package scrape

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/cudev/htmlscrape"
)

// Scraper scrapes one page per call. All fields except Blocks are required.
type Scraper struct {
	Fetcher   htmlscrape.Fetcher
	Extractor htmlscrape.Extractor
	Links     htmlscrape.LinkHarvester

	// Blocks selects which classified blocks are kept.
	// The zero value keeps all of them.
	Blocks htmlscrape.BlockPolicy
}

// Scrape fetches url and builds its ScrapeResult.
//
// Any failure aborts the run: no result is returned together with an error.
func (s *Scraper) Scrape(ctx context.Context, url string) (*htmlscrape.ScrapeResult, error) {
	if url == "" {
		return nil, htmlscrape.Errorf(htmlscrape.EINVALID, "url required")
	}
	if err := s.Blocks.Validate(); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, withCode(err, htmlscrape.ENETWORK, url)
	}

	ext, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, withCode(err, htmlscrape.EPARSE, url)
	}

	links, err := s.Links.HarvestLinks(html)
	if err != nil {
		return nil, withCode(err, htmlscrape.EPARSE, url)
	}

	return htmlscrape.Assemble(url, ext, links, htmlscrape.AssembleOptions{
		Blocks: s.Blocks,
		Digest: Digest(html),
	})
}

// Digest returns the hex xxhash64 digest of a fetched document.
func Digest(html string) string {
	return strconv.FormatUint(xxhash.Sum64String(html), 16)
}

// withCode keeps coded errors as they are and wraps anything else with code.
func withCode(err error, code, url string) error {
	if htmlscrape.ErrorCode(err) != htmlscrape.EINTERNAL {
		return err
	}
	return htmlscrape.WrapError(code, err, "scraping %s", url)
}
