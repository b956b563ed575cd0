// Package goquery extracts page content and links from HTML documents.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawld"
)

// Ensure Scraper implements crawld.PageScraper.
var _ crawld.PageScraper = (*Scraper)(nil)

// Scraper parses HTML pages into their scraped representation.
type Scraper struct{}

// NewScraper creates a new Scraper.
func NewScraper() *Scraper {
	return &Scraper{}
}

// Scrape extracts the title, visible text, and outbound links from an HTML
// page. Links are resolved against baseURL, stripped of fragments, and
// limited to http(s) schemes. Duplicates are kept in document order; the
// frontier deduplicates on insert.
func (s *Scraper) Scrape(baseURL string, html []byte, statusCode int) (*crawld.ScrapedPage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawld.Errorf(crawld.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, crawld.Errorf(crawld.EINVALID, "failed to parse HTML at %s: %v", baseURL, err)
	}

	page := &crawld.ScrapedPage{
		Data: crawld.PageData{
			URL:        baseURL,
			Title:      strings.TrimSpace(doc.Find("title").First().Text()),
			StatusCode: statusCode,
			Content:    visibleText(doc),
		},
		Links: extractLinks(doc, base),
	}
	return page, nil
}

// visibleText returns the page's rendered text with scripts and styles
// removed and whitespace collapsed, truncated to the stored content limit.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	runes := []rune(text)
	if len(runes) > crawld.PageContentLimit {
		return string(runes[:crawld.PageContentLimit])
	}
	return text
}

func extractLinks(doc *goquery.Document, base *url.URL) []string {
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = crawld.NormalizeURL(href)
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		u := resolved.String()
		if !crawld.IsHTTP(u) {
			return
		}
		links = append(links, u)
	})
	return links
}
