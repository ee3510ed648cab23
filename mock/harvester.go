package mock

import "github.com/cudev/htmlscrape"

var _ htmlscrape.LinkHarvester = (*LinkHarvester)(nil)

// LinkHarvester is a mock implementation of htmlscrape.LinkHarvester.
type LinkHarvester struct {
	HarvestLinksFn func(html string) ([]htmlscrape.RawLink, error)
}

func (h *LinkHarvester) HarvestLinks(html string) ([]htmlscrape.RawLink, error) {
	return h.HarvestLinksFn(html)
}
