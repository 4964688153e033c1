// Package bloom remembers which candidate URLs a discovery run has already
// seen, in constant memory.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// URLSet is a probabilistic set of page URLs. Membership is decided on a
// canonical key, so URLs that differ only in scheme, a leading "www.",
// host case, a fragment or a trailing slash count as the same page.
//
// A false positive makes a new URL look seen; a seen URL is never
// reported as new.
type URLSet struct {
	f *bloom.BloomFilter
}

// NewURLSet creates a set sized for n URLs at the given false positive
// rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether rawURL was added before, and adds it.
func (s *URLSet) Seen(rawURL string) bool {
	return s.f.TestOrAddString(Key(rawURL))
}

// Contains reports whether rawURL might have been added, without adding it.
func (s *URLSet) Contains(rawURL string) bool {
	return s.f.TestString(Key(rawURL))
}

// Len returns the approximate number of distinct URLs added.
func (s *URLSet) Len() uint {
	return uint(s.f.ApproximatedSize())
}

// Key returns the canonical form of rawURL used for membership. Strings
// that don't parse as absolute URLs are used as they are.
func Key(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	p := u.EscapedPath()
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		p = "/"
	}

	key := host + p
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}
