package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var _ casescout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of casescout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*casescout.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*casescout.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
