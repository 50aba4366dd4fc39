package mock

import (
	"context"

	"github.com/fwojciec/hopcrawl"
)

var _ hopcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of hopcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*hopcrawl.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*hopcrawl.Page, error) {
	return f.FetchFn(ctx, url)
}
