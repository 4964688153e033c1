package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/casescout"
)

// MinBodyLength is the number of characters a cleaned candidate body must
// exceed for a gated body strategy to accept it.
const MinBodyLength = 200

// TitleClasses are matched, in order, as case-insensitive substrings of an
// element's class attribute.
var TitleClasses = []string{
	"title", "article-title", "entry-title", "post-title", "headline",
	"story-title", "case-study-title", "cs-title", "customer-story-title",
	"success-story-title", "page-title", "main-title",
}

// TitleIDs are matched, in order, as case-insensitive substrings of an
// element's id.
var TitleIDs = []string{"title", "article-title", "post-title", "headline", "page-title"}

// ContentClasses are the class names searched for the main content.
var ContentClasses = []string{
	"content", "article-content", "entry-content", "post-content",
	"case-study-content", "customer-story", "success-story",
	"case-study-body", "story-content", "main-content", "article-body",
	"story", "customer-story-content", "cs-content", "post-body",
}

// ContentIDs are the ids searched for the main content.
var ContentIDs = []string{"content", "article-content", "post-content", "main-content"}

// BoilerplateSelector matches elements removed before body extraction.
const BoilerplateSelector = "script, style, nav, header, footer, aside, form"

// ExtractTitle runs the title strategies against an unmodified document and
// returns the first non-empty result, or "".
func ExtractTitle(doc *goquery.Document) string {
	for _, property := range []string{"og:title", "article:title"} {
		if content := metaContent(doc, "property", property); content != "" {
			return content
		}
	}

	var title string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title = strings.TrimSpace(s.Text())
		return title == ""
	})
	if title != "" {
		return title
	}

	for _, name := range TitleClasses {
		if s := findByAttr(doc.Selection, "class", name); s != nil {
			if title := strings.TrimSpace(s.Text()); title != "" {
				return title
			}
		}
	}

	for _, name := range TitleIDs {
		if s := findByAttr(doc.Selection, "id", name); s != nil {
			if title := strings.TrimSpace(s.Text()); title != "" {
				return title
			}
		}
	}

	return pageTitle(doc)
}

// pageTitle returns <title> with everything from the first "|" or "-" on
// removed. Those usually introduce the site name.
func pageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if i := strings.IndexByte(title, '|'); i >= 0 {
		title = title[:i]
	}
	if i := strings.IndexByte(title, '-'); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// StripBoilerplate removes navigation, scripts and similar elements from doc.
func StripBoilerplate(doc *goquery.Document) {
	doc.Find(BoilerplateSelector).Remove()
}

// ExtractBody runs the body strategies against a document that has already
// been through StripBoilerplate. With strict set, text is cleaned with
// casescout.CleanStrict instead of casescout.CleanText.
func ExtractBody(doc *goquery.Document, strict bool) string {
	body, _ := findBody(doc, strict)
	return body
}

// findBody returns the body and, for the element-based strategies, the
// element it came from.
func findBody(doc *goquery.Document, strict bool) (string, *goquery.Selection) {
	clean := casescout.CleanText
	if strict {
		clean = casescout.CleanStrict
	}

	accept := func(s *goquery.Selection) (string, bool) {
		if s == nil || s.Length() == 0 {
			return "", false
		}
		text := clean(s.Text())
		return text, casescout.RuneLen(text) > MinBodyLength
	}

	candidates := []func() *goquery.Selection{
		func() *goquery.Selection { return doc.Find("[itemprop=articleBody]").First() },
	}
	for _, name := range ContentClasses {
		candidates = append(candidates, func() *goquery.Selection { return findByAttr(doc.Selection, "class", name) })
	}
	for _, name := range ContentIDs {
		candidates = append(candidates, func() *goquery.Selection { return findByAttr(doc.Selection, "id", name) })
	}
	candidates = append(candidates,
		func() *goquery.Selection { return doc.Find("article").First() },
		func() *goquery.Selection { return doc.Find("main").First() },
		func() *goquery.Selection { return largestParagraphGroup(doc) },
	)

	for _, find := range candidates {
		s := find()
		if text, ok := accept(s); ok {
			return text, s
		}
	}

	return joinParagraphs(doc, strict), nil
}

// largestParagraphGroup groups <p> elements by their parent's tag, class and
// id and returns the parent representing the largest group. The last parent
// seen stands for its group; ties go to the group seen first.
func largestParagraphGroup(doc *goquery.Document) *goquery.Selection {
	type group struct {
		count  int
		parent *goquery.Selection
	}

	groups := make(map[string]*group)
	var order []string

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		parent := p.Parent()
		if parent.Length() == 0 {
			return
		}
		class, _ := parent.Attr("class")
		id, _ := parent.Attr("id")
		key := goquery.NodeName(parent) + class + id

		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.parent = parent
	})

	var best *group
	for _, key := range order {
		if g := groups[key]; best == nil || g.count > best.count {
			best = g
		}
	}
	if best == nil {
		return nil
	}
	return best.parent
}

// joinParagraphs concatenates the trimmed text of every non-empty <p>.
func joinParagraphs(doc *goquery.Document, strict bool) string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if strict {
			text = casescout.CleanStrict(text)
		}
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// findByAttr returns the first element in document order whose attr value
// contains name, ignoring case, or nil.
func findByAttr(root *goquery.Selection, attr, name string) *goquery.Selection {
	name = strings.ToLower(name)
	var found *goquery.Selection
	root.Find("[" + attr + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		if strings.Contains(strings.ToLower(v), name) {
			found = s
			return false
		}
		return true
	})
	return found
}

// metaContent returns the trimmed content of the first <meta> whose key
// attribute equals value.
func metaContent(doc *goquery.Document, key, value string) string {
	var content string
	doc.Find("meta[" + key + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr(key); !strings.EqualFold(v, value) {
			return true
		}
		content, _ = s.Attr("content")
		content = strings.TrimSpace(content)
		return false
	})
	return content
}

// ExtractDescription returns the meta description, or "".
func ExtractDescription(doc *goquery.Document) string {
	return metaContent(doc, "name", "description")
}

// ExtractMeta returns every non-empty meta content value in document order.
func ExtractMeta(doc *goquery.Document) []string {
	var values []string
	doc.Find("meta[content]").Each(func(_ int, s *goquery.Selection) {
		if v := strings.TrimSpace(s.AttrOr("content", "")); v != "" {
			values = append(values, v)
		}
	})
	return values
}
