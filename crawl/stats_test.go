package crawl_test

import (
	"context"
	"testing"

	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_Stats(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	queue := crawl.NewPendingQueue()
	c := newCrawler(t, store, queue, nil)
	ctx := context.Background()

	require.NoError(t, c.Seed(ctx, "https://example.com/docs/intro"))
	require.NoError(t, c.Seed(ctx, "https://example.com/docs/api"))
	require.NoError(t, c.Seed(ctx, "https://example.com/blog/post"))
	require.NoError(t, c.Seed(ctx, "https://www.other.com/page"))

	_, _, err := c.PausePrefix(ctx, "https://example.com/docs", "maintenance")
	require.NoError(t, err)
	_, _, err = c.PausePrefix(ctx, "https://www.other.com", "scope")
	require.NoError(t, err)

	stats, err := c.Stats(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, crawld.StatusCounts{Pending: 1, Paused: 3}, stats.Counts)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, "https://example.com/docs/intro", stats.EarliestSeed)

	assert.Equal(t, []crawld.HostCount{
		{Name: "example.com", Count: 2},
		{Name: "other.com", Count: 1},
	}, stats.TopPausedHosts)

	assert.Equal(t, []crawld.HostCount{
		{Name: "example.com/docs", Count: 2},
		{Name: "other.com/page", Count: 1},
	}, stats.TopPausedPrefixes)

	assert.Equal(t, []crawld.HostCount{
		{Name: "example.com", Count: 3},
		{Name: "other.com", Count: 1},
	}, stats.TopHosts)
}

func TestCrawler_Stats_on_an_empty_frontier(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)

	stats, err := c.Stats(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.EarliestSeed)
	assert.Empty(t, stats.TopHosts)
	assert.Empty(t, stats.TopPausedHosts)
}

func TestCrawler_Stats_truncates_to_topN(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, newStore(t), crawl.NewPendingQueue(), nil)
	ctx := context.Background()

	for _, u := range []string{
		"https://a.com/1", "https://a.com/2", "https://a.com/3",
		"https://b.com/1", "https://b.com/2",
		"https://c.com/1",
	} {
		require.NoError(t, c.Seed(ctx, u))
	}

	stats, err := c.Stats(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []crawld.HostCount{
		{Name: "a.com", Count: 3},
		{Name: "b.com", Count: 2},
	}, stats.TopHosts)
}
