package main

import (
	"fmt"
	"os/signal"
	"syscall"
)

// Run executes the run command. It crawls until the pending set drains to
// workers idling or the process receives SIGINT/SIGTERM, then shuts down
// cleanly so the crawl can resume later from the database.
func (c *RunCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counts, err := deps.Crawler.StatusCounts(ctx)
	if err != nil {
		return err
	}
	if counts.Pending == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing pending. Seed a URL or resume paused ones first.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d pending URLs. Press Ctrl-C to stop.\n", counts.Pending)

	deps.Crawler.Start(ctx)
	<-ctx.Done()
	deps.Crawler.Stop()

	final, err := deps.Crawler.StatusCounts(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Stopped. pending=%d visited=%d paused=%d error=%d\n",
		final.Pending, final.Visited, final.Paused, final.Error)
	return nil
}
