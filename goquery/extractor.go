// Package goquery implements casescout.Extractor with an ordered set of
// title and body heuristics over a goquery document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/casescout"
)

// Ensure Extractor implements casescout.Extractor at compile time.
var _ casescout.Extractor = (*Extractor)(nil)

// Extractor extracts titles and bodies using heuristics that work across
// arbitrary corporate sites.
type Extractor struct {
	strict       bool
	sections     bool
	maxBodyChars int
	converter    casescout.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrictCleaning removes call-to-action phrases, encoding artifacts and
// trailing copyright notices from extracted text.
func WithStrictCleaning(strict bool) Option {
	return func(e *Extractor) {
		e.strict = strict
	}
}

// WithSections builds the body from heading-delimited sections of the main
// content and populates Extraction.Sections.
func WithSections(sections bool) Option {
	return func(e *Extractor) {
		e.sections = sections
	}
}

// WithMaxBodyChars truncates the body to n characters. Zero means no limit.
func WithMaxBodyChars(n int) Option {
	return func(e *Extractor) {
		e.maxBodyChars = n
	}
}

// WithConverter renders the body as Markdown of the main content element
// instead of plain text. Bodies that don't come from a single element stay
// plain text.
func WithConverter(c casescout.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and applies the title strategies to the unmodified
// document, then strips boilerplate and applies the body strategies. With
// sections enabled, the first section heading replaces the title.
func (e *Extractor) Extract(html string, pageURL string) (*casescout.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, casescout.Errorf(casescout.EINVALID, "failed to parse HTML: %v", err)
	}

	ex := &casescout.Extraction{
		Title:       ExtractTitle(doc),
		Description: ExtractDescription(doc),
		Meta:        ExtractMeta(doc),
	}

	StripBoilerplate(doc)
	body, region := findBody(doc, e.strict)

	switch {
	case e.sections:
		if region == nil {
			region = doc.Find("body")
		}
		if region.Length() > 0 {
			ex.Sections = ExtractSections(region, e.strict)
		}
		if joined := casescout.JoinSections(ex.Sections); joined != "" {
			body = joined
		}
		// The first heading of the content region names a structured page.
		for _, sec := range ex.Sections {
			if sec.Heading != "" {
				ex.Title = sec.Heading
				break
			}
		}
	case e.converter != nil && region != nil:
		if md := e.markdown(region); md != "" {
			body = md
		}
	}

	ex.Body = casescout.Truncate(body, e.maxBodyChars)
	return ex, nil
}

func (e *Extractor) markdown(region *goquery.Selection) string {
	fragment, err := goquery.OuterHtml(region)
	if err != nil {
		return ""
	}
	md, err := e.converter.Convert(fragment)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}
