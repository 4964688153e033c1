package casescout

import "context"

// Response is a fetched document. Body is decoded to UTF-8.
type Response struct {
	// URL is the final URL after redirects.
	URL string

	StatusCode      int
	ContentType     string
	ContentLanguage string
	Body            string
}

// Fetcher retrieves documents over the network.
type Fetcher interface {
	// Fetch performs a GET request and returns the response.
	// Any non-2xx status is reported as an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}
