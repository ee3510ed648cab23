package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cudev/htmlscrape"
	"github.com/cudev/htmlscrape/goquery"
	"github.com/cudev/htmlscrape/htmltomarkdown"
	scrapehttp "github.com/cudev/htmlscrape/http"
	"github.com/cudev/htmlscrape/readability"
	"github.com/cudev/htmlscrape/rod"
	"github.com/cudev/htmlscrape/scrape"
	scrapeslog "github.com/cudev/htmlscrape/slog"
	"github.com/cudev/htmlscrape/trafilatura"
)

// URLEnv names the environment variable consulted when no URL argument is given.
const URLEnv = "HTMLSCRAPE_URL"

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Extraction libraries.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Format    string        `short:"f" enum:"text,json,markdown" default:"text" help:"Output format (text, json, markdown)"`
	Blocks    string        `short:"b" enum:"all,content" default:"all" help:"Text blocks to print (all, content)"`
	Extractor string        `short:"e" enum:"trafilatura,readability" default:"trafilatura" help:"Content extraction library"`
	Render    bool          `short:"r" help:"Render the page in headless Chrome before extraction"`
	StrictTLS bool          `name:"strict-tls" help:"Verify TLS certificates instead of trusting every server"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout"`
	UserAgent string        `name:"user-agent" env:"HTMLSCRAPE_USER_AGENT" help:"User-Agent header sent with the request"`
	Language  string        `name:"lang" help:"Only accept pages declaring this ISO 639-1 language (trafilatura only)"`
	Verbose   bool          `short:"v" help:"Log pipeline progress to stderr"`
	URL       string        `arg:"" optional:"" env:"HTMLSCRAPE_URL" help:"Page URL to scrape"`
}

// TLSPolicy returns the certificate policy selected by the flags.
func (c *CLI) TLSPolicy() htmlscrape.TLSPolicy {
	if c.StrictTLS {
		return htmlscrape.StrictTLS
	}
	return htmlscrape.TrustAllTLS
}

// ScrapeCmd scrapes one page and prints the result.
type ScrapeCmd struct {
	CLI    *CLI
	Stdout io.Writer
	Stderr io.Writer
}

// Run wires the pipeline, scrapes the URL and writes the result to Stdout.
// Nothing is written to Stdout when scraping fails.
func (c *ScrapeCmd) Run(ctx context.Context) error {
	logger := newLogger(c.Stderr, c.CLI.Verbose)

	policy := c.CLI.TLSPolicy()
	if policy.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled", "url", c.CLI.URL)
	}

	extractor, err := c.newExtractor()
	if err != nil {
		return err
	}

	fetcher, err := c.newFetcher(policy)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	s := &scrape.Scraper{
		Fetcher:   scrapeslog.NewLoggingFetcher(fetcher, logger),
		Extractor: scrapeslog.NewLoggingExtractor(extractor, logger),
		Links:     scrapeslog.NewLoggingHarvester(goquery.NewLinkHarvester(), logger),
		Blocks:    htmlscrape.BlockPolicy(c.CLI.Blocks),
	}

	result, err := s.Scrape(ctx, c.CLI.URL)
	if err != nil {
		return err
	}

	switch c.CLI.Format {
	case FormatJSON:
		return htmlscrape.WriteJSON(c.Stdout, result)
	case FormatMarkdown:
		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(result.URL))
		return htmlscrape.WriteMarkdown(c.Stdout, result, conv)
	case FormatText, "":
		return htmlscrape.WriteText(c.Stdout, result)
	default:
		return htmlscrape.Errorf(htmlscrape.ECONFIG, "unknown format %q", c.CLI.Format)
	}
}

func (c *ScrapeCmd) newFetcher(policy htmlscrape.TLSPolicy) (htmlscrape.Fetcher, error) {
	if c.CLI.Render {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(c.CLI.Timeout),
			rod.WithTLSPolicy(policy),
		)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	opts := []scrapehttp.Option{
		scrapehttp.WithTimeout(c.CLI.Timeout),
		scrapehttp.WithTLSPolicy(policy),
	}
	if c.CLI.UserAgent != "" {
		opts = append(opts, scrapehttp.WithUserAgent(c.CLI.UserAgent))
	}
	return scrapehttp.NewFetcher(opts...), nil
}

func (c *ScrapeCmd) newExtractor() (htmlscrape.Extractor, error) {
	switch c.CLI.Extractor {
	case ExtractorTrafilatura, "":
		var opts []trafilatura.Option
		if c.CLI.Language != "" {
			opts = append(opts, trafilatura.WithTargetLanguage(c.CLI.Language))
		}
		return trafilatura.NewExtractor(opts...), nil
	case ExtractorReadability:
		if c.CLI.Language != "" {
			return nil, htmlscrape.Errorf(htmlscrape.ECONFIG, "--lang requires the trafilatura extractor")
		}
		return readability.NewExtractor(), nil
	default:
		return nil, htmlscrape.Errorf(htmlscrape.ECONFIG, "unknown extractor %q", c.CLI.Extractor)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
