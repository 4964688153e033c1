// Package htmltomarkdown renders extracted HTML regions as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/casescout"
)

// RemovedTags are dropped with their content during conversion.
var RemovedTags = []string{
	"script", "style", "noscript", "iframe", "nav", "header", "footer", "aside", "form",
}

var excessBlankLinesRe = regexp.MustCompile(`\n{3,}`)

var _ casescout.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// Option configures a Converter.
type Option func(*options)

type options struct {
	dropImages bool
}

// WithoutImages drops <img> elements instead of rendering image links.
func WithoutImages() Option {
	return func(o *options) { o.dropImages = true }
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range RemovedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	if o.dropImages {
		conv.Register.TagType("img", converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown with at most one blank line
// between blocks and no trailing spaces.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", casescout.Errorf(casescout.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = excessBlankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(md), nil
}
