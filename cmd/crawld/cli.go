package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Frontier crawld.FrontierStore
	Crawler  *crawl.Crawler
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `env:"CRAWLD_DB" default:"crawld.db" help:"Path to the frontier database"`
	Workers int           `env:"CRAWLD_WORKERS" default:"0" help:"Number of fetch workers (0 = derive from CPU count)"`
	Delay   time.Duration `env:"CRAWLD_DELAY" default:"1s" help:"Per-worker politeness delay between fetches"`
	Verbose bool          `short:"v" help:"Log at debug level"`

	Seed         SeedCmd         `cmd:"" help:"Register a starting URL"`
	Run          RunCmd          `cmd:"" help:"Crawl until interrupted"`
	Pause        PauseCmd        `cmd:"" help:"Pause a single URL"`
	PausePrefix  PausePrefixCmd  `cmd:"" name:"pause-prefix" help:"Pause all pending URLs under a prefix"`
	Resume       ResumeCmd       `cmd:"" help:"Resume a single paused URL"`
	ResumePrefix ResumePrefixCmd `cmd:"" name:"resume-prefix" help:"Resume all paused URLs under a prefix"`
	ResumeAll    ResumeAllCmd    `cmd:"" name:"resume-all" help:"Resume every paused URL"`
	ResumeDomain ResumeDomainCmd `cmd:"" name:"resume-domain" help:"Resume all paused URLs for a domain and its subdomains"`
	Pending      PendingCmd      `cmd:"" help:"List pending URLs, optionally under a prefix"`
	Paused       PausedCmd       `cmd:"" help:"List paused URLs"`
	Status       StatusCmd       `cmd:"" help:"Show per-status record counts"`
	Stats        StatsCmd        `cmd:"" help:"Show frontier statistics"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	URL string `arg:"" help:"Starting URL"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct{}

// PauseCmd is the "pause" subcommand.
type PauseCmd struct {
	URL    string `arg:"" help:"URL to pause"`
	Reason string `default:"manual" help:"Reason recorded with the pause"`
}

// PausePrefixCmd is the "pause-prefix" subcommand.
type PausePrefixCmd struct {
	Prefix string `arg:"" help:"URL prefix to pause"`
	Reason string `default:"manual" help:"Reason recorded with the pause"`
}

// ResumeCmd is the "resume" subcommand.
type ResumeCmd struct {
	URL string `arg:"" help:"URL to resume"`
}

// ResumePrefixCmd is the "resume-prefix" subcommand.
type ResumePrefixCmd struct {
	Prefix string `arg:"" help:"URL prefix to resume"`
}

// ResumeAllCmd is the "resume-all" subcommand.
type ResumeAllCmd struct{}

// ResumeDomainCmd is the "resume-domain" subcommand.
type ResumeDomainCmd struct {
	Domain string `arg:"" help:"Domain to resume (includes subdomains)"`
}

// PendingCmd is the "pending" subcommand.
type PendingCmd struct {
	Prefix string `arg:"" optional:"" help:"Limit the listing to URLs under this prefix"`
}

// PausedCmd is the "paused" subcommand.
type PausedCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Top int `default:"10" help:"Number of entries per breakdown"`
}
