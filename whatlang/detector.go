package whatlang

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/casescout"
	"golang.org/x/net/html"
)

// Confidence assigned to each declared-language source.
const (
	HeaderConfidence   = 0.9
	HTMLLangConfidence = 0.85
	MetaConfidence     = 0.8
)

// SampleLength is the number of characters of visible text classified when
// a page declares no language.
const SampleLength = 2000

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	urlRe         = regexp.MustCompile(`https?://\S+`)
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// Ensure Detector implements casescout.LanguageDetector at compile time.
var _ casescout.LanguageDetector = (*Detector)(nil)

// Detector determines a page's language. Declared languages win over
// classification, in this order: Content-Language header, <html lang>,
// <meta http-equiv="content-language">.
type Detector struct {
	fetcher    casescout.Fetcher
	classifier casescout.LanguageClassifier
}

// NewDetector creates a Detector. A nil classifier uses NewClassifier.
func NewDetector(fetcher casescout.Fetcher, classifier casescout.LanguageClassifier) *Detector {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Detector{fetcher: fetcher, classifier: classifier}
}

// DetectLanguage fetches url and detects its language. Any failure yields
// casescout.UnknownLanguage.
func (d *Detector) DetectLanguage(ctx context.Context, url string) casescout.Language {
	resp, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		return casescout.UnknownLanguage
	}
	return d.Detect(resp)
}

// Detect detects the language of an already fetched page.
func (d *Detector) Detect(resp *casescout.Response) casescout.Language {
	if resp == nil {
		return casescout.UnknownLanguage
	}

	if code := primaryCode(resp.ContentLanguage); code != "" {
		return declared(code, HeaderConfidence)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return casescout.UnknownLanguage
	}

	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		if code := primaryCode(lang); code != "" {
			return declared(code, HTMLLangConfidence)
		}
	}

	var metaCode string
	doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("http-equiv", "")), "content-language") {
			return true
		}
		metaCode = primaryCode(s.AttrOr("content", ""))
		return metaCode == ""
	})
	if metaCode != "" {
		return declared(metaCode, MetaConfidence)
	}

	sample := TextSample(doc)
	if sample == "" {
		return casescout.UnknownLanguage
	}
	return d.classifier.Classify(sample)
}

func declared(code string, confidence float64) casescout.Language {
	return casescout.Language{Code: code, Name: LanguageName(code), Confidence: confidence}
}

// TextSample returns up to SampleLength characters of the document's visible
// text with code, scripts, URLs and punctuation removed. The document is
// modified.
func TextSample(doc *goquery.Document) string {
	doc.Find("script, style, code, pre").Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		appendText(&sb, n)
	}

	text := whitespaceRe.ReplaceAllString(sb.String(), " ")
	text = urlRe.ReplaceAllString(text, "")
	text = punctuationRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	return casescout.Truncate(text, SampleLength)
}

// appendText writes every text node under n, each followed by a space.
func appendText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(sb, c)
	}
}
