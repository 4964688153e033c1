package http

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/casescout"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
)

// Ensure SitemapService implements casescout.SitemapService.
var _ casescout.SitemapService = (*SitemapService)(nil)

var sitemapDirectiveRe = regexp.MustCompile(`(?i)sitemap:\s*(https?://[^\s]+)`)

// robotsBodyLimit caps how much of robots.txt is read.
const robotsBodyLimit = 512 << 10

// SitemapService discovers candidate URLs from website sitemaps via HTTP.
type SitemapService struct {
	client        *http.Client
	logger        *slog.Logger
	userAgent     string
	respectRobots bool
	timeout       time.Duration
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithLogger sets the logger for sitemaps that are skipped because of an
// error. Defaults to discarding.
func WithLogger(logger *slog.Logger) SitemapOption {
	return func(s *SitemapService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRespectRobots drops candidates that robots.txt disallows for the
// service's user agent.
func WithRespectRobots(respect bool) SitemapOption {
	return func(s *SitemapService) {
		s.respectRobots = respect
	}
}

// WithSitemapUserAgent overrides DefaultUserAgent for sitemap requests and
// robots.txt matching.
func WithSitemapUserAgent(ua string) SitemapOption {
	return func(s *SitemapService) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithSitemapTimeout bounds each robots.txt and sitemap request. A request
// that runs out of time skips that document only. Defaults to
// DefaultFetchTimeout; a non-positive d keeps the default.
func WithSitemapTimeout(d time.Duration) SitemapOption {
	return func(s *SitemapService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:    client,
		logger:    slog.New(slog.DiscardHandler),
		userAgent: DefaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Candidates returns the URLs from the site's sitemaps that match keywords,
// in sitemap order. Nothing is fetched until the sequence is ranged over.
func (s *SitemapService) Candidates(ctx context.Context, baseURL string, keywords casescout.KeywordSet) iter.Seq[casescout.Candidate] {
	return func(yield func(casescout.Candidate) bool) {
		base, err := url.Parse(baseURL)
		if err != nil || base.Host == "" {
			s.logger.Warn("invalid base URL", "url", baseURL)
			return
		}
		root := &url.URL{Scheme: base.Scheme, Host: base.Host}

		sitemaps, robots := s.findSitemapURLs(ctx, root)

		w := &sitemapWalk{
			svc:      s,
			keywords: keywords,
			robots:   robots,
			visited:  newVisitSet(),
			yield:    yield,
		}
		for _, sitemapURL := range sitemaps {
			if !w.visit(ctx, sitemapURL) {
				return
			}
		}
	}
}

// findSitemapURLs returns the sitemaps listed in robots.txt, or the default
// locations when there are none. The parsed robots.txt is returned when the
// service respects it and it could be read.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, *robotstxt.Group) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()

	var group *robotstxt.Group
	status, body, err := s.get(ctx, robotsURL, robotsBodyLimit)
	if err != nil {
		s.logger.Debug("robots.txt unavailable", "url", robotsURL, "error", err)
	} else if s.respectRobots {
		if data, err := robotstxt.FromStatusAndBytes(status, body); err == nil {
			group = data.FindGroup(s.userAgent)
		}
	}

	var sitemaps []string
	if err == nil && status >= 200 && status <= 299 {
		for _, m := range sitemapDirectiveRe.FindAllStringSubmatch(string(body), -1) {
			sitemaps = append(sitemaps, m[1])
		}
	}
	if len(sitemaps) > 0 {
		return sitemaps, group
	}

	for _, p := range casescout.DefaultSitemapPaths {
		sitemaps = append(sitemaps, root.ResolveReference(&url.URL{Path: p}).String())
	}
	return sitemaps, group
}

// sitemapWalk is the state of one Candidates sequence.
type sitemapWalk struct {
	svc      *SitemapService
	keywords casescout.KeywordSet
	robots   *robotstxt.Group
	visited  *visitSet
	yield    func(casescout.Candidate) bool
}

// visit processes one sitemap depth-first. It returns false once the
// consumer has stopped or the context is done.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) bool {
	if ctx.Err() != nil {
		return false
	}
	if !w.visited.add(sitemapURL) {
		return true
	}

	root, err := w.svc.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		w.svc.logger.Warn("sitemap skipped", "sitemap", sitemapURL, "error", err)
		return true
	}

	if children := root.SelectElements("sitemap"); len(children) > 0 {
		for _, child := range children {
			loc := child.SelectElement("loc")
			if loc == nil {
				continue
			}
			childURL := strings.TrimSpace(loc.Text())
			if childURL == "" {
				continue
			}
			if !w.visit(ctx, childURL) {
				return false
			}
		}
		return true
	}

	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" || !w.keywords.Matches(u) || !w.allowed(u) {
			continue
		}
		if !w.yield(casescout.Candidate{URL: u, Sitemap: sitemapURL}) {
			return false
		}
	}
	return true
}

func (w *sitemapWalk) allowed(rawURL string) bool {
	if w.robots == nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return w.robots.Test(path)
}

// fetchSitemap fetches and parses one sitemap document. Documents that are
// neither served as XML nor named *.xml are rejected.
func (s *SitemapService) fetchSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setBrowserHeaders(req, s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, sitemapURL)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "xml") && !hasXMLSuffix(sitemapURL) {
		return nil, fmt.Errorf("not XML: %q", contentType)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}
	return root, nil
}

// get fetches a URL and returns its status and at most limit bytes of body.
func (s *SitemapService) get(ctx context.Context, targetURL string, limit int64) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	setBrowserHeaders(req, s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func hasXMLSuffix(rawURL string) bool {
	if u, err := url.Parse(rawURL); err == nil {
		return strings.HasSuffix(strings.ToLower(u.Path), ".xml")
	}
	return strings.HasSuffix(strings.ToLower(rawURL), ".xml")
}

// visitSet records the sitemaps already processed by one sequence.
type visitSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newVisitSet() *visitSet {
	return &visitSet{seen: make(map[string]struct{})}
}

// add marks u visited and reports whether it was new.
func (v *visitSet) add(u string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[u]; ok {
		return false
	}
	v.seen[u] = struct{}{}
	return true
}
