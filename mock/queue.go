package mock

import (
	"context"
	"time"

	"github.com/fwojciec/crawld"
)

var _ crawld.WorkQueue = (*WorkQueue)(nil)

// WorkQueue is a mock implementation of crawld.WorkQueue.
type WorkQueue struct {
	PushFn           func(url string)
	PopFn            func(ctx context.Context, wait time.Duration) (string, bool)
	RemoveByPrefixFn func(prefix string) int
	FillFn           func(urls []string)
	LenFn            func() int
}

func (q *WorkQueue) Push(url string) {
	q.PushFn(url)
}

func (q *WorkQueue) Pop(ctx context.Context, wait time.Duration) (string, bool) {
	return q.PopFn(ctx, wait)
}

func (q *WorkQueue) RemoveByPrefix(prefix string) int {
	return q.RemoveByPrefixFn(prefix)
}

func (q *WorkQueue) Fill(urls []string) {
	q.FillFn(urls)
}

func (q *WorkQueue) Len() int {
	return q.LenFn()
}
