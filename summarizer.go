package casescout

import "context"

// DefaultPrompt is the instruction appended to the records when no other
// prompt is given.
const DefaultPrompt = "Please read all of these case studies and summarize information you learned about the company"

// Summarizer turns a set of records into prose using a text-completion
// model.
type Summarizer interface {
	// Summarize formats records with FormatPrompt and returns the model's
	// answer. Returns EINVALID if there are no records.
	Summarize(ctx context.Context, records []*Record, prompt string) (string, error)
}
