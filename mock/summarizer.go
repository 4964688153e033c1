package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var _ casescout.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of casescout.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, records []*casescout.Record, prompt string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, records []*casescout.Record, prompt string) (string, error) {
	return s.SummarizeFn(ctx, records, prompt)
}
