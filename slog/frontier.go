package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crawld"
)

// Ensure LoggingFrontierStore implements crawld.FrontierStore.
var _ crawld.FrontierStore = (*LoggingFrontierStore)(nil)

// LoggingFrontierStore wraps a FrontierStore, logging the operations that
// change crawl scope. Single-record reads and writes stay quiet; the worker
// loop logs those with crawl context the store doesn't have.
type LoggingFrontierStore struct {
	next   crawld.FrontierStore
	logger *slog.Logger
}

// NewLoggingFrontierStore creates a new LoggingFrontierStore.
func NewLoggingFrontierStore(next crawld.FrontierStore, logger *slog.Logger) *LoggingFrontierStore {
	return &LoggingFrontierStore{next: next, logger: logger}
}

func (s *LoggingFrontierStore) InsertIfAbsent(ctx context.Context, url string, status crawld.Status, isSitemap bool) (bool, error) {
	return s.next.InsertIfAbsent(ctx, url, status, isSitemap)
}

func (s *LoggingFrontierStore) Get(ctx context.Context, url string) (*crawld.Record, error) {
	return s.next.Get(ctx, url)
}

func (s *LoggingFrontierStore) UpdateStatus(ctx context.Context, url string, status crawld.Status, upd crawld.StatusUpdate) error {
	return s.next.UpdateStatus(ctx, url, status, upd)
}

func (s *LoggingFrontierStore) ListByStatus(ctx context.Context, status crawld.Status) ([]string, error) {
	return s.next.ListByStatus(ctx, status)
}

func (s *LoggingFrontierStore) AllURLs(ctx context.Context) ([]string, error) {
	return s.next.AllURLs(ctx)
}

// PausePrefix delegates to the wrapped store and logs the operation.
func (s *LoggingFrontierStore) PausePrefix(ctx context.Context, prefix, reason string) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("pause prefix",
			"prefix", prefix,
			"reason", reason,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PausePrefix(ctx, prefix, reason)
}

// ResumePrefix delegates to the wrapped store and logs the operation.
func (s *LoggingFrontierStore) ResumePrefix(ctx context.Context, prefix string) (urls []string, n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("resume prefix",
			"prefix", prefix,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ResumePrefix(ctx, prefix)
}

// ResumeAll delegates to the wrapped store and logs the operation.
func (s *LoggingFrontierStore) ResumeAll(ctx context.Context) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("resume all",
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ResumeAll(ctx)
}

func (s *LoggingFrontierStore) EarliestURL(ctx context.Context) (string, error) {
	return s.next.EarliestURL(ctx)
}

func (s *LoggingFrontierStore) StatusCounts(ctx context.Context) (crawld.StatusCounts, error) {
	return s.next.StatusCounts(ctx)
}

func (s *LoggingFrontierStore) Close() error {
	return s.next.Close()
}
