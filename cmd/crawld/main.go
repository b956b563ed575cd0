package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/crawl"
	"github.com/fwojciec/crawld/etree"
	"github.com/fwojciec/crawld/fs"
	"github.com/fwojciec/crawld/goquery"
	crawlhttp "github.com/fwojciec/crawld/http"
	crawlslog "github.com/fwojciec/crawld/slog"
	"github.com/fwojciec/crawld/sqlite"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the frontier store.
	DB *sqlite.DB

	// Frontier exposed for end-to-end testing.
	Frontier crawld.FrontierStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawld"),
		kong.Description("A polite, resumable web crawler."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'crawld --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CRAWLD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	logger := newLogger(filepath.Join(filepath.Dir(cli.DB), "crawler.log"), cli.Verbose)

	m.Frontier = crawlslog.NewLoggingFrontierStore(sqlite.NewFrontierService(m.DB), logger)

	fetcher := crawlslog.NewLoggingFetcher(crawlhttp.NewFetcher(), logger)
	sink := fs.NewSink(filepath.Join(filepath.Dir(cli.DB), "scraped_data.jsonl"))

	crawler, err := crawl.New(ctx, crawl.Config{
		Frontier: m.Frontier,
		Queue:    crawl.NewPendingQueue(),
		Fetcher:  fetcher,
		Sitemaps: etree.NewParser(),
		Scraper:  goquery.NewScraper(),
		Sink:     sink,
		Logger:   logger,
		Workers:  workerCount(cli.Workers),
		Delay:    cli.Delay,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}

	deps.Frontier = m.Frontier
	deps.Crawler = crawler
	deps.Logger = logger

	return kongCtx.Run(deps)
}

// newLogger builds the rotating file logger shared by all commands.
func newLogger(path string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 5,
	}, &slog.HandlerOptions{Level: level}))
}

// workerCount resolves the configured worker count, deriving one from the
// machine when unset.
func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	n := 4 * runtime.NumCPU()
	if n < 2 {
		return 2
	}
	if n > 32 {
		return 32
	}
	return n
}
