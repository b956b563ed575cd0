package etree_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_urlset(t *testing.T) {
	t.Parallel()

	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://example.com/</loc><lastmod>2026-01-01</lastmod></url>
	<url><loc>  https://example.com/about  </loc></url>
	<url><loc></loc></url>
	<url><loc>https://example.com/contact</loc></url>
</urlset>`)

	entries, err := etree.NewParser().Parse("https://example.com/sitemap.xml", body)
	require.NoError(t, err)
	assert.Equal(t, []crawld.SitemapEntry{
		{URL: "https://example.com/"},
		{URL: "https://example.com/about"},
		{URL: "https://example.com/contact"},
	}, entries)
}

func TestParser_Parse_sitemapindex(t *testing.T) {
	t.Parallel()

	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<sitemap><loc>https://example.com/sitemap-posts.xml</loc></sitemap>
	<sitemap><loc>https://example.com/sitemap-pages.xml.gz</loc></sitemap>
</sitemapindex>`)

	entries, err := etree.NewParser().Parse("https://example.com/sitemap.xml", body)
	require.NoError(t, err)
	assert.Equal(t, []crawld.SitemapEntry{
		{URL: "https://example.com/sitemap-posts.xml", IsSitemap: true},
		{URL: "https://example.com/sitemap-pages.xml.gz", IsSitemap: true},
	}, entries)
}

func TestParser_Parse_gzipped_body(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(`<urlset><url><loc>https://example.com/a</loc></url></urlset>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	entries, err := etree.NewParser().Parse("https://example.com/sitemap.xml.gz", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []crawld.SitemapEntry{{URL: "https://example.com/a"}}, entries)
}

func TestParser_Parse_gz_URL_with_plain_body(t *testing.T) {
	t.Parallel()

	// Some servers decompress .gz sitemaps in transit; the raw bytes are
	// parsed as-is when gunzipping fails.
	body := []byte(`<urlset><url><loc>https://example.com/a</loc></url></urlset>`)

	entries, err := etree.NewParser().Parse("https://example.com/sitemap.xml.gz", body)
	require.NoError(t, err)
	assert.Equal(t, []crawld.SitemapEntry{{URL: "https://example.com/a"}}, entries)
}

func TestParser_Parse_unrecognized_root(t *testing.T) {
	t.Parallel()

	_, err := etree.NewParser().Parse("https://example.com/feed.xml", []byte(`<rss version="2.0"></rss>`))
	require.Error(t, err)
	assert.Equal(t, crawld.EINVALID, crawld.ErrorCode(err))
}

func TestParser_Parse_malformed_XML(t *testing.T) {
	t.Parallel()

	_, err := etree.NewParser().Parse("https://example.com/sitemap.xml", []byte(`<urlset><url>`))
	require.Error(t, err)
	assert.Equal(t, crawld.EINVALID, crawld.ErrorCode(err))
}
