package hopcrawl

import "context"

// Page is the result of a successful fetch.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string // decoded to UTF-8, line breaks removed
	Bytes       int
	ContentHash string // xxhash64 of Body, hex encoded
}

// Fetcher retrieves a single page.
type Fetcher interface {
	// Fetch retrieves the page at url within the implementation's time limits.
	// A page that cannot be retrieved is reported with an EUNREACHABLE error.
	// Context cancellation is returned as the context's error.
	Fetch(ctx context.Context, url string) (*Page, error)
}
