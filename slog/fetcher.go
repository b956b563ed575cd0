// Package slog provides logging decorators for crawld services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crawld"
)

// Ensure LoggingFetcher implements crawld.Fetcher.
var _ crawld.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   crawld.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawld.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *crawld.Response, err error) {
	defer func(begin time.Time) {
		size := 0
		if resp != nil {
			size = len(resp.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
