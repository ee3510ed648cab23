package htmlscrape

// RawLink is a link-bearing element found while parsing a document.
type RawLink struct {
	// URI is the href or src attribute as written in the document.
	URI string

	// Anchor is true when the link comes from an <a> element.
	Anchor bool

	// Element is the lowercase tag name ("a", "img", "script", ...).
	Element string

	// Text is the trimmed text content of the element.
	Text string

	// Rel is the rel attribute, if any.
	Rel string

	// Position is the zero-based order in which the link was found.
	Position int
}

// Link is an outbound anchor target kept in a ScrapeResult.
type Link struct {
	URI  string `json:"uri"`
	Text string `json:"text,omitempty"`
}

// LinkHarvester collects every link-bearing element of an HTML document.
type LinkHarvester interface {
	// HarvestLinks parses HTML and returns links in document order.
	// Links are neither filtered nor deduplicated.
	HarvestLinks(html string) ([]RawLink, error)
}
