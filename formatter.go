package htmlscrape

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

const sectionRule = "================="

// WriteText writes the plain-text report: the summary line, then every text
// block and every link URI, one per line.
func WriteText(w io.Writer, r *ScrapeResult) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(r.String())
	bw.WriteString("\n")

	bw.WriteString("\nTextBlocks\n" + sectionRule + "\n")
	for _, block := range r.TextBlocks {
		bw.WriteString(block)
		bw.WriteString("\n")
	}

	bw.WriteString("\nLinks\n" + sectionRule + "\n")
	for _, link := range r.Links {
		bw.WriteString(link.URI)
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *ScrapeResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown writes the main content as Markdown followed by the link list.
// Uses title if available, falls back to the URL for the heading.
func WriteMarkdown(w io.Writer, r *ScrapeResult, conv Converter) error {
	header := r.Title
	if header == "" {
		header = r.URL
	}

	var b strings.Builder
	b.WriteString("# " + header + "\n\n")
	b.WriteString("Source: <" + r.URL + ">\n")

	if strings.TrimSpace(r.ContentHTML) != "" {
		md, err := conv.Convert(r.ContentHTML)
		if err != nil {
			return WrapError(EPARSE, err, "converting content of %s to markdown", r.URL)
		}
		b.WriteString("\n" + strings.TrimSpace(md) + "\n")
	}

	if len(r.Links) > 0 {
		b.WriteString("\n## Links\n\n")
		for _, link := range r.Links {
			b.WriteString("- " + link.URI + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
