package crawld

import (
	"context"
	"time"
)

// WorkQueue dispatches pending URLs to workers. It mirrors the frontier
// store's pending set but is not the source of truth: on restart it is
// rebuilt from the store, and workers re-read the store after every pop.
type WorkQueue interface {
	// Push appends a URL without blocking.
	Push(url string)

	// Pop removes and returns the oldest URL, waiting up to the given
	// duration for one to arrive. The bool result is false if the wait
	// elapsed or the context was canceled.
	Pop(ctx context.Context, wait time.Duration) (string, bool)

	// RemoveByPrefix removes all currently queued URLs starting with prefix
	// and returns the count removed. The relative order of remaining
	// entries is preserved. Removal is best effort: entries already claimed
	// by a worker are unaffected; the store's re-check on dequeue is the
	// correctness backstop.
	RemoveByPrefix(prefix string) int

	// Fill appends URLs in bulk, used to rebuild the queue from the store.
	Fill(urls []string)

	// Len returns the number of queued URLs.
	Len() int
}
