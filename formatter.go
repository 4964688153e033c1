package casescout

import (
	"fmt"
	"strings"
)

// PromptBodyLimit is the number of characters of each record body included
// in a summarization prompt.
const PromptBodyLimit = 10000

// FormatPrompt builds the text sent to a summarizer: a numbered block per
// successful record with its title, URL and body (truncated to
// PromptBodyLimit), followed by the prompt. An empty prompt is replaced by
// DefaultPrompt. Failed records are left out.
func FormatPrompt(records []*Record, prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	var sb strings.Builder
	sb.WriteString("Here are the case studies I found:\n\n")

	i := 0
	for _, rec := range records {
		if rec == nil || rec.Failed() {
			continue
		}
		i++
		fmt.Fprintf(&sb, "--- Case Study %d ---\n", i)
		fmt.Fprintf(&sb, "Title: %s\n", rec.Title)
		fmt.Fprintf(&sb, "URL: %s\n", rec.URL)
		fmt.Fprintf(&sb, "Content:\n%s\n\n", Truncate(rec.Body, PromptBodyLimit))
	}

	sb.WriteString("\n\n")
	sb.WriteString(prompt)
	return sb.String()
}

// FormatRecords formats records for display. Uses title if available,
// falls back to URL. Failed records show their error in place of a body.
// Records are separated by blank lines.
func FormatRecords(records []*Record) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, rec := range records {
		header := rec.Title
		if header == "" {
			header = rec.URL
		}
		content := rec.Body
		if rec.Failed() {
			content = "Error: " + rec.Error
		}
		parts = append(parts, "## "+header+"\nURL: "+rec.URL+"\n"+content)
	}

	return strings.Join(parts, "\n\n")
}
