package mock

import (
	"github.com/fwojciec/crawld"
)

var _ crawld.SitemapParser = (*SitemapParser)(nil)

// SitemapParser is a mock implementation of crawld.SitemapParser.
type SitemapParser struct {
	ParseFn func(sourceURL string, body []byte) ([]crawld.SitemapEntry, error)
}

func (p *SitemapParser) Parse(sourceURL string, body []byte) ([]crawld.SitemapEntry, error) {
	return p.ParseFn(sourceURL, body)
}
