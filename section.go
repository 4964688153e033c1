package casescout

import "strings"

// Section is a heading and the content that follows it up to the next
// heading.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// JoinSections concatenates sections into a single body. Each section is
// rendered as its heading followed by its content on the next line;
// sections are separated by a blank line. Empty parts are skipped.
func JoinSections(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		var lines []string
		if s.Heading != "" {
			lines = append(lines, s.Heading)
		}
		if s.Content != "" {
			lines = append(lines, s.Content)
		}
		if len(lines) == 0 {
			continue
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
