package casescout

import (
	"context"
	"iter"
)

// DefaultSitemapPaths are tried, in order, when robots.txt lists no sitemaps.
var DefaultSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
}

// Candidate is a URL found in a sitemap that passed the keyword filter but
// has not been validated yet.
type Candidate struct {
	URL     string
	Sitemap string
}

// SitemapService discovers candidate URLs from website sitemaps.
type SitemapService interface {
	// Candidates returns a lazy sequence of URLs matching keywords.
	// It first checks robots.txt for sitemap directives, then falls back
	// to DefaultSitemapPaths. Sitemap indexes are resolved recursively,
	// depth-first, and no sitemap is fetched twice in one sequence.
	//
	// Sitemaps are fetched only as the sequence is consumed, so a caller
	// that stops ranging stops the network traffic. Failures at a single
	// sitemap are skipped; an unreachable site yields nothing.
	Candidates(ctx context.Context, baseURL string, keywords KeywordSet) iter.Seq[Candidate]
}
