package crawld

import "context"

// PageContentLimit is the number of characters of extracted page text kept
// in a content record.
const PageContentLimit = 500

// PageData is the content record appended to the sink for each fetched
// HTML page.
type PageData struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	StatusCode int    `json:"status_code"`
	Content    string `json:"content"` // first PageContentLimit characters of extracted text
}

// ScrapedPage is the result of scraping an HTML page.
type ScrapedPage struct {
	Data PageData

	// Links holds every anchor target resolved against the page URL,
	// stripped of fragments, and filtered to http(s) schemes, in document
	// order.
	Links []string
}

// PageScraper extracts a content record and outbound links from a fetched
// HTML body.
type PageScraper interface {
	Scrape(baseURL string, html []byte, statusCode int) (*ScrapedPage, error)
}

// ContentSink is an append-only, line-oriented stream of content records.
// Implementations must serialize appends so concurrent writers never
// interleave partial records.
type ContentSink interface {
	Append(ctx context.Context, data PageData) error
}
