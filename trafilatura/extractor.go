// Package trafilatura extracts records with go-trafilatura, an alternative
// to the heuristic goquery engine.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/casescout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ casescout.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	converter    casescout.Converter
	maxBodyChars int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the content node through c instead of using its
// plain text.
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

// Extract processes raw HTML and returns the main content. A page
// trafilatura finds nothing in yields an empty extraction.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*casescout.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, casescout.Errorf(casescout.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil {
		return &casescout.Extraction{}, nil
	}

	ex := &casescout.Extraction{
		Title:       casescout.CleanText(result.Metadata.Title),
		Description: casescout.CleanText(result.Metadata.Description),
		Body:        casescout.CleanText(result.ContentText),
	}

	if e.converter != nil && result.ContentNode != nil {
		if rendered, err := renderNode(result.ContentNode); err == nil {
			if md, err := e.converter.Convert(rendered); err == nil && md != "" {
				ex.Body = md
			}
		}
	}

	ex.Body = casescout.Truncate(ex.Body, e.maxBodyChars)
	return ex, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
