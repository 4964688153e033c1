// Package openai summarizes records with the OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/casescout"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"
)

// Defaults match the summarization settings casescout has always used.
const (
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 2000
)

var _ casescout.Summarizer = (*Summarizer)(nil)

// Summarizer implements casescout.Summarizer using OpenAI.
type Summarizer struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewSummarizer creates a new Summarizer. An empty model or non-positive
// maxTokens selects the defaults.
func NewSummarizer(client openai.Client, model string, maxTokens int) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Summarizer{client: client, model: model, maxTokens: maxTokens}
}

// Summarize sends the successful records and prompt as a single user
// message and returns the first choice.
func (s *Summarizer) Summarize(ctx context.Context, records []*casescout.Record, prompt string) (string, error) {
	records = casescout.SucceededRecords(records)
	if len(records) == 0 {
		return "", casescout.Errorf(casescout.EINVALID, "no records to summarize")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(casescout.FormatPrompt(records, prompt)),
		},
		MaxTokens: openai.Int(int64(s.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", casescout.Errorf(casescout.EUNAVAILABLE, "openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", casescout.Errorf(casescout.EUNAVAILABLE, "openai returned an empty summary")
	}
	return text, nil
}
