package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/casescout"
	"golang.org/x/net/html"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// contentTags hold section text. A content element nested inside another is
// read through its ancestor only.
var contentTags = map[string]bool{
	"p": true, "li": true, "blockquote": true, "pre": true, "td": true,
	"dd": true, "dt": true, "figcaption": true,
}

// ExtractSections splits region into sections. Every heading starts a new
// section whose content is the text of the content elements that follow it,
// up to the next heading. Text before the first heading forms a section
// without a heading. Each section is cleaned on its own.
func ExtractSections(region *goquery.Selection, strict bool) []casescout.Section {
	clean := casescout.CleanText
	if strict {
		clean = casescout.CleanStrict
	}

	var (
		sections []casescout.Section
		heading  string
		parts    []string
	)
	flush := func() {
		s := casescout.Section{
			Heading: clean(heading),
			Content: clean(strings.Join(parts, "\n\n")),
		}
		if s.Heading != "" || s.Content != "" {
			sections = append(sections, s)
		}
		heading, parts = "", nil
	}

	region.Find(headingSelector + ", p, li, blockquote, pre, td, dd, dt, figcaption").Each(func(_ int, s *goquery.Selection) {
		if s.Is(headingSelector) {
			if s.ParentsFiltered(headingSelector).Length() > 0 {
				return
			}
			flush()
			heading = s.Text()
			return
		}
		if hasContentAncestor(s, region) || s.ParentsFiltered(headingSelector).Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	flush()

	return sections
}

// hasContentAncestor reports whether s sits inside another content element
// within region.
func hasContentAncestor(s, region *goquery.Selection) bool {
	stop := region.Get(0)
	for n := s.Get(0).Parent; n != nil && n != stop; n = n.Parent {
		if n.Type == html.ElementNode && contentTags[n.Data] {
			return true
		}
	}
	return false
}
