package mock

import (
	"context"

	"github.com/fwojciec/crawld"
)

var _ crawld.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crawld.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*crawld.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawld.Response, error) {
	return f.FetchFn(ctx, url)
}
