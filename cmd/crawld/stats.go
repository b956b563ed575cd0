package main

import (
	"fmt"

	"github.com/fwojciec/crawld"
)

// Run executes the pending command.
func (c *PendingCmd) Run(deps *Dependencies) error {
	urls, err := deps.Crawler.ListPendingByPrefix(deps.Ctx, c.Prefix)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}

// Run executes the paused command.
func (c *PausedCmd) Run(deps *Dependencies) error {
	urls, err := deps.Crawler.ListPaused(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	counts, err := deps.Crawler.StatusCounts(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "pending: %d\n", counts.Pending)
	fmt.Fprintf(deps.Stdout, "visited: %d\n", counts.Visited)
	fmt.Fprintf(deps.Stdout, "paused:  %d\n", counts.Paused)
	fmt.Fprintf(deps.Stdout, "error:   %d\n", counts.Error)
	fmt.Fprintf(deps.Stdout, "total:   %d\n", counts.Total())
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Crawler.Stats(deps.Ctx, c.Top)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Total URLs: %d\n", stats.Total)
	if stats.EarliestSeed != "" {
		fmt.Fprintf(deps.Stdout, "Earliest seed: %s\n", stats.EarliestSeed)
	}
	fmt.Fprintf(deps.Stdout, "pending=%d visited=%d paused=%d error=%d\n",
		stats.Counts.Pending, stats.Counts.Visited, stats.Counts.Paused, stats.Counts.Error)

	printBreakdown(deps, "Top hosts", stats.TopHosts)
	printBreakdown(deps, "Top paused hosts", stats.TopPausedHosts)
	printBreakdown(deps, "Top paused prefixes", stats.TopPausedPrefixes)
	return nil
}

func printBreakdown(deps *Dependencies, title string, counts []crawld.HostCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(deps.Stdout, "\n%s:\n", title)
	for _, hc := range counts {
		fmt.Fprintf(deps.Stdout, "  %6d  %s\n", hc.Count, hc.Name)
	}
}
