package mock

import (
	"context"

	"github.com/fwojciec/crawld"
)

var _ crawld.PageScraper = (*PageScraper)(nil)

// PageScraper is a mock implementation of crawld.PageScraper.
type PageScraper struct {
	ScrapeFn func(baseURL string, html []byte, statusCode int) (*crawld.ScrapedPage, error)
}

func (s *PageScraper) Scrape(baseURL string, html []byte, statusCode int) (*crawld.ScrapedPage, error) {
	return s.ScrapeFn(baseURL, html, statusCode)
}

var _ crawld.ContentSink = (*ContentSink)(nil)

// ContentSink is a mock implementation of crawld.ContentSink.
type ContentSink struct {
	AppendFn func(ctx context.Context, data crawld.PageData) error
}

func (s *ContentSink) Append(ctx context.Context, data crawld.PageData) error {
	return s.AppendFn(ctx, data)
}
