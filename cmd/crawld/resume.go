package main

import (
	"fmt"

	"github.com/fwojciec/crawld"
)

// Run executes the resume command.
func (c *ResumeCmd) Run(deps *Dependencies) error {
	if err := deps.Crawler.ResumeURL(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Resumed %s\n", c.URL)
	return nil
}

// Run executes the resume-prefix command.
func (c *ResumePrefixCmd) Run(deps *Dependencies) error {
	n, err := deps.Crawler.ResumePrefix(deps.Ctx, c.Prefix)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Resumed %d URLs under %s\n", n, c.Prefix)
	return nil
}

// Run executes the resume-all command.
func (c *ResumeAllCmd) Run(deps *Dependencies) error {
	n, err := deps.Crawler.ResumeAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Resumed %d URLs\n", n)
	return nil
}

// Run executes the resume-domain command.
func (c *ResumeDomainCmd) Run(deps *Dependencies) error {
	n, err := deps.Crawler.ResumeForDomain(deps.Ctx, c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawld.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Resumed %d URLs for %s\n", n, c.Domain)
	return nil
}
