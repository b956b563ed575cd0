package crawl

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/fwojciec/crawld"
)

// Stats aggregates frontier-wide statistics: per-status counts, the earliest
// seed, and the top-N breakdowns of paused hosts, paused prefixes, and
// overall domain distribution.
func (c *Crawler) Stats(ctx context.Context, topN int) (*crawld.Stats, error) {
	counts, err := c.frontier.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &crawld.Stats{
		Counts: counts,
		Total:  counts.Total(),
	}

	earliest, err := c.frontier.EarliestURL(ctx)
	if err != nil && crawld.ErrorCode(err) != crawld.ENOTFOUND {
		return nil, err
	}
	stats.EarliestSeed = earliest

	paused, err := c.frontier.ListByStatus(ctx, crawld.StatusPaused)
	if err != nil {
		return nil, err
	}

	pausedHosts := newOrderedCounter()
	pausedPrefixes := newOrderedCounter()
	for _, u := range paused {
		if host := crawld.Host(u); host != "" {
			pausedHosts.add(host)
		}
		if prefix := hostPrefix(u); prefix != "" {
			pausedPrefixes.add(prefix)
		}
	}
	stats.TopPausedHosts = pausedHosts.top(topN)
	stats.TopPausedPrefixes = pausedPrefixes.top(topN)

	all, err := c.frontier.AllURLs(ctx)
	if err != nil {
		return nil, err
	}

	hosts := newOrderedCounter()
	for _, u := range all {
		if host := crawld.Host(u); host != "" {
			hosts.add(host)
		}
	}
	stats.TopHosts = hosts.top(topN)

	return stats, nil
}

// hostPrefix returns "host/first-path-segment" for a URL, or just the host
// when the path is empty. The www. prefix is stripped to group paused URLs
// the way operators think about them.
func hostPrefix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host == "" {
		return ""
	}

	segments := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if segments[0] == "" {
		return host
	}
	return host + "/" + segments[0]
}

// orderedCounter counts string occurrences while remembering first-encounter
// order, so top-N output is deterministic under ties.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (o *orderedCounter) add(key string) {
	if _, ok := o.counts[key]; !ok {
		o.order = append(o.order, key)
	}
	o.counts[key]++
}

func (o *orderedCounter) top(n int) []crawld.HostCount {
	ranked := make([]crawld.HostCount, 0, len(o.order))
	for _, key := range o.order {
		ranked = append(ranked, crawld.HostCount{Name: key, Count: o.counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
