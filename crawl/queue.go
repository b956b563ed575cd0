package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/crawld"
)

// Ensure PendingQueue implements crawld.WorkQueue.
var _ crawld.WorkQueue = (*PendingQueue)(nil)

// PendingQueue is an in-memory FIFO of URLs awaiting fetch. It shadows the
// frontier store's pending set: the store remains the source of truth and
// the queue is rebuilt from it on startup.
type PendingQueue struct {
	mu     sync.Mutex
	items  []string
	notify chan struct{}
}

// NewPendingQueue creates an empty PendingQueue.
func NewPendingQueue() *PendingQueue {
	return &PendingQueue{
		notify: make(chan struct{}, 1),
	}
}

// Push appends a URL to the tail of the queue without blocking.
func (q *PendingQueue) Push(url string) {
	q.mu.Lock()
	q.items = append(q.items, url)
	q.mu.Unlock()
	q.wake()
}

// Fill appends URLs in bulk, preserving their order.
func (q *PendingQueue) Fill(urls []string) {
	if len(urls) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, urls...)
	q.mu.Unlock()
	q.wake()
}

// Pop removes and returns the oldest URL. When the queue is empty it waits
// up to wait for a push, returning false if the wait elapses or ctx is
// canceled.
func (q *PendingQueue) Pop(ctx context.Context, wait time.Duration) (string, bool) {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	for {
		if url, ok := q.tryPop(); ok {
			return url, true
		}

		select {
		case <-ctx.Done():
			return "", false
		case <-deadline.C:
			return "", false
		case <-q.notify:
		}
	}
}

// RemoveByPrefix removes every queued URL starting with prefix and returns
// the count removed. The relative order of the remaining entries is
// preserved. Entries already popped by a worker are out of reach; the
// worker's store re-check handles those.
func (q *PendingQueue) RemoveByPrefix(prefix string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	removed := 0
	for _, u := range q.items {
		if strings.HasPrefix(u, prefix) {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	q.items = kept
	return removed
}

// Len returns the number of queued URLs.
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *PendingQueue) tryPop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	url := q.items[0]
	q.items = q.items[1:]
	return url, true
}

// wake nudges one waiting Pop. The channel has capacity one, so a pending
// wakeup absorbs further signals.
func (q *PendingQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
