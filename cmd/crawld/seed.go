package main

import (
	"fmt"

	"github.com/fwojciec/crawld"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	if err := deps.Crawler.Seed(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Seeded %s\n", c.URL)
	return nil
}
