package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cudev/htmlscrape"
	scrapehttp "github.com/cudev/htmlscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher(scrapehttp.WithUserAgent("test-agent/2"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/2", got)
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("fails when body exceeds max size", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><p>` + strings.Repeat("x", 100) + `</p><a href="/late">late</a></body></html>`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher(scrapehttp.WithMaxBodySize(50))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Empty(t, html)
		assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err))
		assert.Contains(t, err.Error(), "exceeds 50 bytes")
	})

	t.Run("accepts body of exactly max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("0123456789"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher(scrapehttp.WithMaxBodySize(10))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "0123456789", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := scrapehttp.NewFetcher(scrapehttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := scrapehttp.NewFetcher(scrapehttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err))
	})

	t.Run("returns error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err))
	})

	t.Run("rejects malformed URLs without a request", func(t *testing.T) {
		t.Parallel()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		for _, u := range []string{"", "example.com/page", "ftp://example.com/file", "http://", "://bad"} {
			_, err := fetcher.Fetch(context.Background(), u)
			require.Error(t, err, u)
			assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err), u)
		}
	})
}

func TestFetcher_TLSPolicy(t *testing.T) {
	t.Parallel()

	t.Run("strict policy rejects self-signed certificate", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<p>secure</p>"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, htmlscrape.ENETWORK, htmlscrape.ErrorCode(err))
		assert.False(t, fetcher.TLSPolicy().InsecureSkipVerify)
	})

	t.Run("trust-all policy accepts self-signed certificate", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<p>secure</p>"))
		}))
		defer server.Close()

		fetcher := scrapehttp.NewFetcher(scrapehttp.WithInsecureSkipVerify())
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>secure</p>", html)
	})

	t.Run("applying trust-all twice behaves like once", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<p>secure</p>"))
		}))
		defer server.Close()

		once := scrapehttp.NewFetcher(scrapehttp.WithInsecureSkipVerify())
		defer once.Close()
		twice := scrapehttp.NewFetcher(scrapehttp.WithInsecureSkipVerify(), scrapehttp.WithInsecureSkipVerify())
		defer twice.Close()

		assert.Equal(t, once.TLSPolicy(), twice.TLSPolicy())
		assert.Equal(t, once.Transport().TLSClientConfig.InsecureSkipVerify, twice.Transport().TLSClientConfig.InsecureSkipVerify)

		htmlOnce, errOnce := once.Fetch(context.Background(), server.URL)
		htmlTwice, errTwice := twice.Fetch(context.Background(), server.URL)
		require.NoError(t, errOnce)
		require.NoError(t, errTwice)
		assert.Equal(t, htmlOnce, htmlTwice)
	})

	t.Run("policy does not leak between fetchers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		trusting := scrapehttp.NewFetcher(scrapehttp.WithInsecureSkipVerify())
		defer trusting.Close()
		strict := scrapehttp.NewFetcher(scrapehttp.WithTLSPolicy(htmlscrape.StrictTLS))
		defer strict.Close()

		_, err := trusting.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		_, err = strict.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})
}

func TestTLSConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, scrapehttp.TLSConfig(htmlscrape.StrictTLS).InsecureSkipVerify)
	assert.True(t, scrapehttp.TLSConfig(htmlscrape.TrustAllTLS).InsecureSkipVerify)
	assert.NotSame(t, scrapehttp.TLSConfig(htmlscrape.TrustAllTLS), scrapehttp.TLSConfig(htmlscrape.TrustAllTLS))
}

// Compile-time verification that Fetcher implements htmlscrape.Fetcher
var _ htmlscrape.Fetcher = (*scrapehttp.Fetcher)(nil)
