// Package etree parses sitemap XML documents using the etree library.
package etree

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/crawld"
)

// Ensure Parser implements crawld.SitemapParser.
var _ crawld.SitemapParser = (*Parser)(nil)

// Parser extracts URL entries from sitemap and sitemap index documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the entries of a sitemap document. A <sitemapindex> yields
// entries flagged as sitemaps; a <urlset> yields page entries. Bodies fetched
// from .gz URLs are gunzipped first, falling back to the raw bytes when the
// content arrives already decompressed.
func (p *Parser) Parse(sourceURL string, body []byte) ([]crawld.SitemapEntry, error) {
	if strings.HasSuffix(strings.ToLower(sourceURL), ".gz") {
		if decoded, err := gunzip(body); err == nil {
			body = decoded
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, crawld.Errorf(crawld.EINVALID, "malformed sitemap XML at %s: %v", sourceURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, crawld.Errorf(crawld.EINVALID, "empty sitemap document at %s", sourceURL)
	}

	switch strings.ToLower(root.Tag) {
	case "sitemapindex":
		return collectEntries(root, "sitemap", true), nil
	case "urlset":
		return collectEntries(root, "url", false), nil
	default:
		return nil, crawld.Errorf(crawld.EINVALID, "unrecognized sitemap root element <%s> at %s", root.Tag, sourceURL)
	}
}

// collectEntries extracts <loc> values from the container elements, in
// document order, skipping empty locations.
func collectEntries(root *etree.Element, container string, isSitemap bool) []crawld.SitemapEntry {
	entries := []crawld.SitemapEntry{}
	for _, el := range root.SelectElements(container) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" {
			continue
		}
		entries = append(entries, crawld.SitemapEntry{URL: u, IsSitemap: isSitemap})
	}
	return entries
}

func gunzip(body []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
