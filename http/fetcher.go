// Package http provides an HTTP-based implementation of htmlscrape.Fetcher
// with an explicit certificate verification policy.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cudev/htmlscrape"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize is the largest response body accepted.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "htmlscrape/1.0 (+https://github.com/cudev/htmlscrape)"

// Ensure Fetcher implements htmlscrape.Fetcher at compile time.
var _ htmlscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using a single HTTP GET.
// It does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	transport   *http.Transport
	timeout     time.Duration
	tlsPolicy   htmlscrape.TLSPolicy
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithTLSPolicy sets the certificate verification policy.
// Defaults to htmlscrape.StrictTLS.
func WithTLSPolicy(p htmlscrape.TLSPolicy) Option {
	return func(f *Fetcher) {
		f.tlsPolicy = p
	}
}

// WithInsecureSkipVerify makes the fetcher accept any server certificate and
// skip hostname verification. Every HTTPS request made by the fetcher is
// then open to interception.
func WithInsecureSkipVerify() Option {
	return WithTLSPolicy(htmlscrape.TrustAllTLS)
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the largest response body accepted. Larger bodies
// fail the fetch.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.transport = NewTransport(f.tlsPolicy)
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
	}

	return f
}

// NewTransport returns a transport with the proxy, dial and pooling defaults
// of http.DefaultTransport and a TLS configuration built from p.
func NewTransport(p htmlscrape.TLSPolicy) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = TLSConfig(p)
	return t
}

// TLSConfig returns the client TLS configuration for p.
func TLSConfig(p htmlscrape.TLSPolicy) *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: p.InsecureSkipVerify, //nolint:gosec // opt-in trust-all policy
	}
}

// TLSPolicy returns the certificate verification policy in effect.
func (f *Fetcher) TLSPolicy() htmlscrape.TLSPolicy {
	return f.tlsPolicy
}

// Transport returns the underlying transport.
func (f *Fetcher) Transport() *http.Transport {
	return f.transport
}

// Fetch retrieves the HTML content from the given URL.
// The body is decoded to UTF-8 using the response's declared charset.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "building request for %s", rawURL)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "fetching %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", htmlscrape.Errorf(htmlscrape.ENETWORK, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.ENETWORK, err, "reading %s", rawURL)
	}
	if int64(len(raw)) > f.maxBodySize {
		return "", htmlscrape.Errorf(htmlscrape.ENETWORK, "response for %s exceeds %d bytes", rawURL, f.maxBodySize)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.EPARSE, err, "decoding %s", rawURL)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", htmlscrape.WrapError(htmlscrape.EPARSE, err, "decoding %s", rawURL)
	}

	return string(b), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return htmlscrape.WrapError(htmlscrape.ENETWORK, err, "malformed url %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return htmlscrape.Errorf(htmlscrape.ENETWORK, "malformed url %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return htmlscrape.Errorf(htmlscrape.ENETWORK, "malformed url %q: missing host", rawURL)
	}
	return nil
}

