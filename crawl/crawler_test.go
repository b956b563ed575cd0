package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/crawl"
	"github.com/fwojciec/crawld/etree"
	"github.com/fwojciec/crawld/goquery"
	"github.com/fwojciec/crawld/mock"
	"github.com/fwojciec/crawld/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.FrontierService {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewFrontierService(db)
}

func newCrawler(t *testing.T, store crawld.FrontierStore, queue crawld.WorkQueue, fetcher crawld.Fetcher) *crawl.Crawler {
	t.Helper()

	if fetcher == nil {
		fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*crawld.Response, error) {
				return &crawld.Response{StatusCode: 200, ContentType: "text/html", Body: []byte("<html></html>")}, nil
			},
		}
	}

	c, err := crawl.New(context.Background(), crawl.Config{
		Frontier: store,
		Queue:    queue,
		Fetcher:  fetcher,
		Sitemaps: etree.NewParser(),
		Scraper:  goquery.NewScraper(),
		Sink: &mock.ContentSink{
			AppendFn: func(ctx context.Context, data crawld.PageData) error { return nil },
		},
		Logger:  discardLogger(),
		Workers: 2,
	})
	require.NoError(t, err)
	return c
}

func TestCrawler_Seed(t *testing.T) {
	t.Parallel()

	t.Run("registers and enqueues a new URL", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		queue := crawl.NewPendingQueue()
		c := newCrawler(t, store, queue, nil)
		ctx := context.Background()

		require.NoError(t, c.Seed(ctx, "  https://example.com/  "))

		rec, err := store.Get(ctx, "https://example.com/")
		require.NoError(t, err)
		assert.Equal(t, crawld.StatusPending, rec.Status)
		assert.Equal(t, 1, queue.Len())
		assert.Equal(t, "example.com", c.MainDomain())
	})

	t.Run("flags sitemap-shaped seeds", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		c := newCrawler(t, store, crawl.NewPendingQueue(), nil)
		ctx := context.Background()

		require.NoError(t, c.Seed(ctx, "https://example.com/sitemap.xml"))

		rec, err := store.Get(ctx, "https://example.com/sitemap.xml")
		require.NoError(t, err)
		assert.True(t, rec.IsSitemap)
	})

	t.Run("rejects a duplicate seed with ECONFLICT", func(t *testing.T) {
		t.Parallel()

		c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)
		ctx := context.Background()

		require.NoError(t, c.Seed(ctx, "https://example.com/"))
		err := c.Seed(ctx, "https://example.com/")
		require.Error(t, err)
		assert.Equal(t, crawld.ECONFLICT, crawld.ErrorCode(err))
	})

	t.Run("rejects a blank seed with EINVALID", func(t *testing.T) {
		t.Parallel()

		c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)
		err := c.Seed(context.Background(), "   ")
		require.Error(t, err)
		assert.Equal(t, crawld.EINVALID, crawld.ErrorCode(err))
	})
}

func TestCrawler_New_restores_state_from_the_store(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	for _, u := range []string{"https://example.com/", "https://example.com/a", "https://example.com/b"} {
		_, err := store.InsertIfAbsent(ctx, u, crawld.StatusPending, false)
		require.NoError(t, err)
	}
	require.NoError(t, store.UpdateStatus(ctx, "https://example.com/a", crawld.StatusVisited, crawld.StatusUpdate{}))

	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)

	assert.Equal(t, "example.com", c.MainDomain())
	assert.Equal(t, 2, queue.Len(), "only pending URLs are requeued")
}

func TestCrawler_PauseURL_and_ResumeURL(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/page"))

	require.NoError(t, c.PauseURL(ctx, "https://example.com/page", "manual"))
	rec, err := store.Get(ctx, "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, crawld.StatusPaused, rec.Status)
	assert.Equal(t, "manual", rec.PauseReason)

	require.NoError(t, c.ResumeURL(ctx, "https://example.com/page"))
	rec, err = store.Get(ctx, "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, crawld.StatusPending, rec.Status)
	assert.Empty(t, rec.PauseReason)
}

func TestCrawler_ResumeURL_requires_paused_status(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/"))

	err := c.ResumeURL(ctx, "https://example.com/")
	require.Error(t, err)
	assert.Equal(t, crawld.EINVALID, crawld.ErrorCode(err))

	err = c.ResumeURL(ctx, "https://example.com/unknown")
	require.Error(t, err)
	assert.Equal(t, crawld.ENOTFOUND, crawld.ErrorCode(err))
}

func TestCrawler_PausePrefix_pauses_records_and_drains_the_queue(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/docs/1"))
	require.NoError(t, c.Seed(ctx, "https://example.com/docs/2"))
	require.NoError(t, c.Seed(ctx, "https://example.com/blog/1"))

	paused, dequeued, err := c.PausePrefix(ctx, "https://example.com/docs", "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 2, paused)
	assert.Equal(t, 2, dequeued)
	assert.Equal(t, 1, queue.Len())

	counts, err := c.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, crawld.StatusCounts{Pending: 1, Paused: 2}, counts)
}

func TestCrawler_ResumePrefix_requeues_exactly_the_paused_set(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/docs/1"))
	require.NoError(t, c.Seed(ctx, "https://example.com/docs/2"))
	require.NoError(t, c.Seed(ctx, "https://example.com/blog/1"))

	_, _, err := c.PausePrefix(ctx, "https://example.com/docs", "maintenance")
	require.NoError(t, err)
	queueBefore := queue.Len()

	n, err := c.ResumePrefix(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, queueBefore+2, queue.Len())

	counts, err := c.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, crawld.StatusCounts{Pending: 3}, counts)
}

func TestCrawler_ResumeAll(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://a.com/1"))
	require.NoError(t, c.Seed(ctx, "https://b.com/1"))
	_, _, err := c.PausePrefix(ctx, "https://", "all")
	require.NoError(t, err)

	n, err := c.ResumeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCrawler_ResumeForDomain_matches_subdomains(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://www.example.com/1"))
	require.NoError(t, c.Seed(ctx, "https://docs.example.com/2"))
	require.NoError(t, c.Seed(ctx, "https://other.com/3"))
	_, _, err := c.PausePrefix(ctx, "https://", "all")
	require.NoError(t, err)

	n, err := c.ResumeForDomain(ctx, "Example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := store.Get(ctx, "https://other.com/3")
	require.NoError(t, err)
	assert.Equal(t, crawld.StatusPaused, rec.Status)
}

func TestCrawler_ListPendingByPrefix(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/docs/1"))
	require.NoError(t, c.Seed(ctx, "https://example.com/blog/1"))
	require.NoError(t, c.Seed(ctx, "https://example.com/docs/2"))

	urls, err := c.ListPendingByPrefix(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs/1", "https://example.com/docs/2"}, urls)

	all, err := c.ListPendingByPrefix(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCrawler_Start_and_Stop_terminate_cleanly(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)

	c.Start(context.Background())
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
