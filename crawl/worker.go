package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crawld"
)

// popWait bounds how long a worker blocks on an empty queue before checking
// for cancellation again.
const popWait = time.Second

func (c *Crawler) runWorker(ctx context.Context, id int) {
	logger := c.logger.With("worker", id)
	pace := newPacer(c.delay)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		url, ok := c.queue.Pop(ctx, popWait)
		if !ok {
			continue
		}

		c.processURL(ctx, logger, pace, url)
	}
}

// processURL handles one dequeued URL end to end. A panic in any stage is
// contained here so one poisoned page cannot take down the worker.
func (c *Crawler) processURL(ctx context.Context, logger *slog.Logger, pace *pacer, url string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while processing", "url", url, "panic", r)
		}
	}()

	// Re-read the record: the URL's status may have changed between enqueue
	// and dequeue (paused by an operator, or already visited). The store is
	// the source of truth; the queue is just a hint.
	rec, err := c.frontier.Get(ctx, url)
	if err != nil {
		if crawld.ErrorCode(err) != crawld.ENOTFOUND {
			logger.Error("frontier read failed", "url", url, "err", err)
		}
		return
	}
	if rec.Status != crawld.StatusPending {
		logger.Debug("skipping", "url", url, "status", rec.Status)
		return
	}

	if err := pace.Wait(ctx); err != nil {
		return
	}

	logger.Info("fetching", "url", url, "retry", rec.RetryCount)

	resp, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.recordFailure(ctx, logger, url, rec, err)
		return
	}

	isSitemap, err := c.dispatcher.Dispatch(ctx, url, resp)
	if err != nil {
		c.recordFailure(ctx, logger, url, rec, err)
		return
	}

	if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusVisited, crawld.StatusUpdate{
		ClearLastError: true,
		IsSitemap:      &isSitemap,
	}); err != nil {
		logger.Error("frontier update failed", "url", url, "err", err)
		return
	}

	logger.Info("visited", "url", url, "status_code", resp.StatusCode, "sitemap", isSitemap)
}

// recordFailure increments the retry count and either requeues the URL or,
// at MaxRetries, marks it as a terminal error.
func (c *Crawler) recordFailure(ctx context.Context, logger *slog.Logger, url string, rec *crawld.Record, cause error) {
	msg := cause.Error()
	attempts := rec.RetryCount + 1

	if attempts < crawld.MaxRetries {
		if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusPending, crawld.StatusUpdate{
			LastError:      &msg,
			IncrementRetry: true,
		}); err != nil {
			logger.Error("frontier update failed", "url", url, "err", err)
			return
		}
		c.queue.Push(url)
		logger.Info("re-queued after failure", "url", url, "attempts", attempts, "err", msg)
		return
	}

	if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusError, crawld.StatusUpdate{
		LastError:      &msg,
		IncrementRetry: true,
	}); err != nil {
		logger.Error("frontier update failed", "url", url, "err", err)
		return
	}
	logger.Error("giving up", "url", url, "attempts", attempts, "err", msg)
}
