package crawld

import "context"

// Response is the successful result of fetching a URL.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher retrieves raw content from URLs over HTTP(S).
type Fetcher interface {
	// Fetch performs a GET request against the URL. Success is exactly
	// HTTP 200; any other status is returned as an error carrying the
	// numeric code in its text.
	Fetch(ctx context.Context, url string) (*Response, error)
}
