package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/crawld"
)

// Dispatcher routes a fetched response to the sitemap or HTML pipeline and
// feeds discovered URLs back into the frontier.
type Dispatcher struct {
	Frontier crawld.FrontierStore
	Queue    crawld.WorkQueue
	Sitemaps crawld.SitemapParser
	Scraper  crawld.PageScraper
	Sink     crawld.ContentSink
	Logger   *slog.Logger
}

// Dispatch processes a successful fetch. It returns whether the response was
// handled as a sitemap, so the caller can record the classification. A
// malformed sitemap still counts as a successful visit: the fetch itself
// worked and retrying would not fix the document.
func (d *Dispatcher) Dispatch(ctx context.Context, url string, resp *crawld.Response) (bool, error) {
	if crawld.LooksLikeSitemap(url) || strings.Contains(strings.ToLower(resp.ContentType), "xml") {
		return true, d.handleSitemap(ctx, url, resp)
	}
	return false, d.handleHTML(ctx, url, resp)
}

func (d *Dispatcher) handleSitemap(ctx context.Context, url string, resp *crawld.Response) error {
	entries, err := d.Sitemaps.Parse(url, resp.Body)
	if err != nil {
		d.Logger.Warn("sitemap parse failed", "url", url, "err", err)
		return nil
	}

	for _, entry := range entries {
		if err := d.registerURL(ctx, entry.URL, entry.IsSitemap); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) handleHTML(ctx context.Context, url string, resp *crawld.Response) error {
	page, err := d.Scraper.Scrape(url, resp.Body, resp.StatusCode)
	if err != nil {
		return fmt.Errorf("scraping %s: %w", url, err)
	}

	if err := d.Sink.Append(ctx, page.Data); err != nil {
		return fmt.Errorf("storing %s: %w", url, err)
	}

	for _, link := range page.Links {
		if err := d.registerURL(ctx, link, crawld.LooksLikeSitemap(link)); err != nil {
			return err
		}
	}
	return nil
}

// registerURL records a discovered URL as pending and enqueues it. Already
// known URLs are left untouched whatever their status.
func (d *Dispatcher) registerURL(ctx context.Context, url string, isSitemap bool) error {
	url = crawld.NormalizeURL(url)
	if url == "" {
		return nil
	}

	inserted, err := d.Frontier.InsertIfAbsent(ctx, url, crawld.StatusPending, isSitemap)
	if err != nil {
		return fmt.Errorf("registering %s: %w", url, err)
	}
	if !inserted {
		return nil
	}

	d.Queue.Push(url)
	d.Logger.Debug("discovered", "url", url, "sitemap", isSitemap)
	return nil
}
