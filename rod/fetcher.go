// Package rod provides a browser-based implementation of htmlscrape.Fetcher
// for pages that render their content with JavaScript.
package rod

import (
	"context"
	"sync"
	"time"

	"github.com/cudev/htmlscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default time allowed for navigation and load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements htmlscrape.Fetcher at compile time.
var _ htmlscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using headless Chrome.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout   time.Duration
	tlsPolicy htmlscrape.TLSPolicy

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the time allowed for navigation and page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithTLSPolicy sets the certificate verification policy of the browser.
// With InsecureSkipVerify the browser ignores every certificate error.
func WithTLSPolicy(p htmlscrape.TLSPolicy) Option {
	return func(f *Fetcher) {
		f.tlsPolicy = p
	}
}

// NewFetcher launches a headless Chrome browser and connects to it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an ECONFIG error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, htmlscrape.WrapError(htmlscrape.ECONFIG, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, htmlscrape.WrapError(htmlscrape.ECONFIG, err, "connecting to browser")
	}

	if err := browser.IgnoreCertErrors(f.tlsPolicy.InsecureSkipVerify); err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, htmlscrape.WrapError(htmlscrape.ECONFIG, err, "applying TLS policy to browser")
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// TLSPolicy returns the certificate verification policy in effect.
func (f *Fetcher) TLSPolicy() htmlscrape.TLSPolicy {
	return f.tlsPolicy
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return "", htmlscrape.Errorf(htmlscrape.EINVALID, "fetcher is closed")
	}

	if err := ctx.Err(); err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "fetching %s", url)
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "opening page for %s", url)
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "navigating to %s", url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "loading %s", url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "reading %s", url)
	}

	return html, nil
}

// Close shuts the browser down and kills its process.
// Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
