package mock

import "github.com/cudev/htmlscrape"

var _ htmlscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of htmlscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
