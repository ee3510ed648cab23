package htmlscrape

import "context"

// Fetcher retrieves HTML from a URL.
type Fetcher interface {
	// Fetch performs a single attempt to retrieve the document at url and
	// returns its HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// TLSPolicy controls how fetchers verify server certificates.
//
// InsecureSkipVerify accepts invalid, expired and self-signed certificates and
// skips hostname verification. It weakens transport security for every request
// made by the fetcher it is given to, so it must only be enabled on purpose.
type TLSPolicy struct {
	InsecureSkipVerify bool
}

// StrictTLS verifies certificates against the system roots.
var StrictTLS = TLSPolicy{}

// TrustAllTLS accepts any server certificate.
var TrustAllTLS = TLSPolicy{InsecureSkipVerify: true}
