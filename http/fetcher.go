// Package http provides HTTP implementations of casescout.Fetcher and
// casescout.SitemapService for static sites that don't require JavaScript
// rendering.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/casescout"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single request.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies as a desktop browser. Many corporate sites
// serve bots a stripped page or nothing at all.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"
)

// Ensure Fetcher implements casescout.Fetcher at compile time.
var _ casescout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents using plain HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient sets the HTTP client used for requests. Redirects follow the
// client's policy.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the document at url and decodes its body to UTF-8 using
// the charset declared by the server or the document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*casescout.Response, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setBrowserHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}

	return &casescout.Response{
		URL:             resp.Request.URL.String(),
		StatusCode:      resp.StatusCode,
		ContentType:     contentType,
		ContentLanguage: resp.Header.Get("Content-Language"),
		Body:            body,
	}, nil
}

// decodeBody converts raw to UTF-8. An empty body is an empty document,
// which extraction reports as having no content.
func decodeBody(raw []byte, contentType string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func setBrowserHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)
}
