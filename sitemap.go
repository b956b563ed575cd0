package crawld

// SitemapEntry is a URL discovered in a sitemap document.
type SitemapEntry struct {
	URL string

	// IsSitemap is true when the entry came from a <sitemapindex> and
	// therefore points at another sitemap document rather than a page.
	IsSitemap bool
}

// SitemapParser parses sitemap documents.
type SitemapParser interface {
	// Parse extracts entries from a sitemap body. The source URL decides
	// whether gzip decompression is attempted first; bodies that are not
	// actually gzip-compressed fall back to raw-bytes XML parsing.
	// Returns EINVALID for malformed XML or an unrecognized root element.
	Parse(sourceURL string, body []byte) ([]SitemapEntry, error)
}
