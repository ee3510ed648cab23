package mock

import "github.com/cudev/htmlscrape"

var _ htmlscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of htmlscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*htmlscrape.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*htmlscrape.ExtractResult, error) {
	return e.ExtractFn(html)
}
