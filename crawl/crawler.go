// Package crawl provides the crawl orchestration: the worker pool, the
// in-memory pending queue, and the operator control plane for pausing and
// resuming parts of the frontier.
package crawl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/crawld"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config holds the Crawler's collaborators and tuning knobs.
type Config struct {
	Frontier crawld.FrontierStore
	Queue    crawld.WorkQueue
	Fetcher  crawld.Fetcher
	Sitemaps crawld.SitemapParser
	Scraper  crawld.PageScraper
	Sink     crawld.ContentSink
	Logger   *slog.Logger

	// Workers is the number of concurrent fetch workers.
	Workers int

	// Delay is the per-worker politeness delay between fetches.
	Delay time.Duration
}

// Crawler coordinates the fetch workers and exposes the control plane for
// seeding, pausing, and resuming. All state that must survive a restart
// lives in the frontier store; the Crawler itself is disposable.
type Crawler struct {
	frontier   crawld.FrontierStore
	queue      crawld.WorkQueue
	fetcher    crawld.Fetcher
	dispatcher *Dispatcher
	logger     *slog.Logger

	workers int
	delay   time.Duration
	runID   string

	mu         sync.Mutex
	mainDomain string

	cancel context.CancelFunc
	group  *errgroup.Group
}

// New creates a Crawler and restores its runtime state from the frontier
// store: the main domain is inferred from the earliest seed, and the pending
// queue is rebuilt from the store's pending set.
func New(ctx context.Context, cfg Config) (*Crawler, error) {
	runID := uuid.NewString()
	logger := cfg.Logger.With("run_id", runID)

	c := &Crawler{
		frontier: cfg.Frontier,
		queue:    cfg.Queue,
		fetcher:  cfg.Fetcher,
		dispatcher: &Dispatcher{
			Frontier: cfg.Frontier,
			Queue:    cfg.Queue,
			Sitemaps: cfg.Sitemaps,
			Scraper:  cfg.Scraper,
			Sink:     cfg.Sink,
			Logger:   logger,
		},
		logger:  logger,
		workers: cfg.Workers,
		delay:   cfg.Delay,
		runID:   runID,
	}

	earliest, err := c.frontier.EarliestURL(ctx)
	if err != nil && crawld.ErrorCode(err) != crawld.ENOTFOUND {
		return nil, err
	}
	if err == nil {
		c.mainDomain = crawld.Host(earliest)
	}

	pending, err := c.frontier.ListByStatus(ctx, crawld.StatusPending)
	if err != nil {
		return nil, err
	}
	c.queue.Fill(pending)

	return c, nil
}

// RunID returns the identifier logged with every event of this run.
func (c *Crawler) RunID() string {
	return c.runID
}

// MainDomain returns the domain of the first-ever seed, or the empty string
// before any URL is known.
func (c *Crawler) MainDomain() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mainDomain
}

// Seed registers a starting URL as pending and enqueues it. The first seed
// establishes the crawl's main domain. Returns EINVALID for a blank URL and
// ECONFLICT when the URL is already known.
func (c *Crawler) Seed(ctx context.Context, rawURL string) error {
	url := crawld.NormalizeURL(rawURL)
	if url == "" {
		return crawld.Errorf(crawld.EINVALID, "seed URL must not be empty")
	}

	inserted, err := c.frontier.InsertIfAbsent(ctx, url, crawld.StatusPending, crawld.LooksLikeSitemap(url))
	if err != nil {
		return err
	}
	if !inserted {
		return crawld.Errorf(crawld.ECONFLICT, "URL already known: %s", url)
	}

	c.queue.Push(url)

	c.mu.Lock()
	if c.mainDomain == "" {
		c.mainDomain = crawld.Host(url)
	}
	c.mu.Unlock()

	c.logger.Info("seeded", "url", url)
	return nil
}

// PauseURL withholds a single URL from dispatch. The URL keeps its paused
// status until explicitly resumed.
func (c *Crawler) PauseURL(ctx context.Context, rawURL, reason string) error {
	url := crawld.NormalizeURL(rawURL)
	if _, err := c.frontier.Get(ctx, url); err != nil {
		return err
	}

	if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusPaused, crawld.StatusUpdate{
		PauseReason: &reason,
	}); err != nil {
		return err
	}

	// The queue entry, if any, stays put: the worker re-reads the store
	// after dequeue and skips anything no longer pending.
	c.logger.Info("paused", "url", url, "reason", reason)
	return nil
}

// ResumeURL returns a single paused URL to the pending set and re-enqueues
// it. Returns EINVALID if the URL is not currently paused.
func (c *Crawler) ResumeURL(ctx context.Context, rawURL string) error {
	url := crawld.NormalizeURL(rawURL)
	rec, err := c.frontier.Get(ctx, url)
	if err != nil {
		return err
	}
	if rec.Status != crawld.StatusPaused {
		return crawld.Errorf(crawld.EINVALID, "URL is not paused: %s", url)
	}

	if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusPending, crawld.StatusUpdate{
		ClearPauseReason: true,
	}); err != nil {
		return err
	}

	c.queue.Push(url)
	c.logger.Info("resumed", "url", url)
	return nil
}

// PausePrefix pauses every pending URL under prefix and evicts matching
// entries from the queue. It returns the number of records paused and the
// number of queue entries removed.
func (c *Crawler) PausePrefix(ctx context.Context, prefix, reason string) (paused, dequeued int, err error) {
	paused, err = c.frontier.PausePrefix(ctx, prefix, reason)
	if err != nil {
		return 0, 0, err
	}
	dequeued = c.queue.RemoveByPrefix(prefix)
	return paused, dequeued, nil
}

// ResumePrefix returns every paused URL under prefix to the pending set and
// re-enqueues them.
func (c *Crawler) ResumePrefix(ctx context.Context, prefix string) (int, error) {
	urls, n, err := c.frontier.ResumePrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}
	c.queue.Fill(urls)
	return n, nil
}

// ResumeAll returns every paused URL to the pending set and re-enqueues
// them.
func (c *Crawler) ResumeAll(ctx context.Context) (int, error) {
	urls, err := c.frontier.ResumeAll(ctx)
	if err != nil {
		return 0, err
	}
	c.queue.Fill(urls)
	return len(urls), nil
}

// ResumeForDomain resumes every paused URL whose host is the domain or one
// of its subdomains. Unlike prefix matching this parses each URL, so it is
// scheme- and www-insensitive.
func (c *Crawler) ResumeForDomain(ctx context.Context, domain string) (int, error) {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if domain == "" {
		return 0, crawld.Errorf(crawld.EINVALID, "domain must not be empty")
	}

	paused, err := c.frontier.ListByStatus(ctx, crawld.StatusPaused)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, url := range paused {
		if !crawld.MatchesDomain(crawld.Host(url), domain) {
			continue
		}
		if err := c.frontier.UpdateStatus(ctx, url, crawld.StatusPending, crawld.StatusUpdate{
			ClearPauseReason: true,
		}); err != nil {
			return resumed, err
		}
		c.queue.Push(url)
		resumed++
	}

	c.logger.Info("resumed domain", "domain", domain, "count", resumed)
	return resumed, nil
}

// StatusCounts returns a snapshot of per-status record counts.
func (c *Crawler) StatusCounts(ctx context.Context) (crawld.StatusCounts, error) {
	return c.frontier.StatusCounts(ctx)
}

// ListPaused returns all paused URLs in insertion order.
func (c *Crawler) ListPaused(ctx context.Context) ([]string, error) {
	return c.frontier.ListByStatus(ctx, crawld.StatusPaused)
}

// ListPendingByPrefix returns the pending URLs under prefix, in insertion
// order. An empty prefix lists all pending URLs.
func (c *Crawler) ListPendingByPrefix(ctx context.Context, prefix string) ([]string, error) {
	pending, err := c.frontier.ListByStatus(ctx, crawld.StatusPending)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return pending, nil
	}

	matched := []string{}
	for _, url := range pending {
		if strings.HasPrefix(url, prefix) {
			matched = append(matched, url)
		}
	}
	return matched, nil
}

// Start launches the worker pool. It returns immediately; workers run until
// Stop is called or ctx is canceled.
func (c *Crawler) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.group, ctx = errgroup.WithContext(ctx)

	workers := c.workers
	if workers < 1 {
		workers = 1
	}

	c.logger.Info("starting crawl", "workers", workers, "delay", c.delay, "queued", c.queue.Len())

	for i := 0; i < workers; i++ {
		id := i
		c.group.Go(func() error {
			c.runWorker(ctx, id)
			return nil
		})
	}
}

// Stop cancels the workers and waits for them to drain.
func (c *Crawler) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.group != nil {
		_ = c.group.Wait()
	}
	c.logger.Info("crawl stopped")
}
