// Package readability extracts records with go-readability, the Mozilla
// Readability algorithm.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/casescout"
	"github.com/go-shiori/go-readability"
)

var _ casescout.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	converter    casescout.Converter
	maxBodyChars int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the article HTML through c instead of using its
// text content.
func WithConverter(c casescout.Converter) Option {
	return func(e *Extractor) { e.converter = c }
}

// WithMaxBodyChars truncates bodies to n characters.
func WithMaxBodyChars(n int) Option {
	return func(e *Extractor) { e.maxBodyChars = n }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the article. The page URL, when
// valid, resolves relative links in the article.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*casescout.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, casescout.Errorf(casescout.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return &casescout.Extraction{}, nil
	}

	ex := &casescout.Extraction{
		Title:       casescout.CleanText(article.Title),
		Description: casescout.CleanText(article.Excerpt),
		Body:        casescout.CleanText(article.TextContent),
	}

	if e.converter != nil && strings.TrimSpace(article.Content) != "" {
		if md, err := e.converter.Convert(article.Content); err == nil && md != "" {
			ex.Body = md
		}
	}

	ex.Body = casescout.Truncate(ex.Body, e.maxBodyChars)
	return ex, nil
}
