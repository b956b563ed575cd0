package main

import (
	"fmt"

	"github.com/fwojciec/crawld"
)

// Run executes the pause command.
func (c *PauseCmd) Run(deps *Dependencies) error {
	if err := deps.Crawler.PauseURL(deps.Ctx, c.URL, c.Reason); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Paused %s\n", c.URL)
	return nil
}

// Run executes the pause-prefix command.
func (c *PausePrefixCmd) Run(deps *Dependencies) error {
	paused, dequeued, err := deps.Crawler.PausePrefix(deps.Ctx, c.Prefix, c.Reason)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Paused %d URLs under %s (%d removed from queue)\n", paused, c.Prefix, dequeued)
	return nil
}
