package mock

import (
	"context"

	"github.com/fwojciec/crawld"
)

var _ crawld.FrontierStore = (*FrontierStore)(nil)

// FrontierStore is a mock implementation of crawld.FrontierStore.
type FrontierStore struct {
	InsertIfAbsentFn func(ctx context.Context, url string, status crawld.Status, isSitemap bool) (bool, error)
	GetFn            func(ctx context.Context, url string) (*crawld.Record, error)
	UpdateStatusFn   func(ctx context.Context, url string, status crawld.Status, upd crawld.StatusUpdate) error
	ListByStatusFn   func(ctx context.Context, status crawld.Status) ([]string, error)
	AllURLsFn        func(ctx context.Context) ([]string, error)
	PausePrefixFn    func(ctx context.Context, prefix, reason string) (int, error)
	ResumePrefixFn   func(ctx context.Context, prefix string) ([]string, int, error)
	ResumeAllFn      func(ctx context.Context) ([]string, error)
	EarliestURLFn    func(ctx context.Context) (string, error)
	StatusCountsFn   func(ctx context.Context) (crawld.StatusCounts, error)
	CloseFn          func() error
}

func (s *FrontierStore) InsertIfAbsent(ctx context.Context, url string, status crawld.Status, isSitemap bool) (bool, error) {
	return s.InsertIfAbsentFn(ctx, url, status, isSitemap)
}

func (s *FrontierStore) Get(ctx context.Context, url string) (*crawld.Record, error) {
	return s.GetFn(ctx, url)
}

func (s *FrontierStore) UpdateStatus(ctx context.Context, url string, status crawld.Status, upd crawld.StatusUpdate) error {
	return s.UpdateStatusFn(ctx, url, status, upd)
}

func (s *FrontierStore) ListByStatus(ctx context.Context, status crawld.Status) ([]string, error) {
	return s.ListByStatusFn(ctx, status)
}

func (s *FrontierStore) AllURLs(ctx context.Context) ([]string, error) {
	return s.AllURLsFn(ctx)
}

func (s *FrontierStore) PausePrefix(ctx context.Context, prefix, reason string) (int, error) {
	return s.PausePrefixFn(ctx, prefix, reason)
}

func (s *FrontierStore) ResumePrefix(ctx context.Context, prefix string) ([]string, int, error) {
	return s.ResumePrefixFn(ctx, prefix)
}

func (s *FrontierStore) ResumeAll(ctx context.Context) ([]string, error) {
	return s.ResumeAllFn(ctx)
}

func (s *FrontierStore) EarliestURL(ctx context.Context) (string, error) {
	return s.EarliestURLFn(ctx)
}

func (s *FrontierStore) StatusCounts(ctx context.Context) (crawld.StatusCounts, error) {
	return s.StatusCountsFn(ctx)
}

func (s *FrontierStore) Close() error {
	return s.CloseFn()
}
