// Package anthropic summarizes records with the Anthropic messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicSDK "github.com/anthropics/anthropic-sdk-go"
	"github.com/fwojciec/casescout"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 2000
)

var _ casescout.Summarizer = (*Summarizer)(nil)

// Summarizer implements casescout.Summarizer using Anthropic.
type Summarizer struct {
	client    anthropicSDK.Client
	model     string
	maxTokens int
}

// NewSummarizer creates a new Summarizer. An empty model or non-positive
// maxTokens selects the defaults.
func NewSummarizer(client anthropicSDK.Client, model string, maxTokens int) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Summarizer{client: client, model: model, maxTokens: maxTokens}
}

// Summarize sends the successful records and prompt as a single user
// message and joins the text blocks of the reply.
func (s *Summarizer) Summarize(ctx context.Context, records []*casescout.Record, prompt string) (string, error) {
	records = casescout.SucceededRecords(records)
	if len(records) == 0 {
		return "", casescout.Errorf(casescout.EINVALID, "no records to summarize")
	}

	msg, err := s.client.Messages.New(ctx, anthropicSDK.MessageNewParams{
		Model:     anthropicSDK.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropicSDK.MessageParam{
			anthropicSDK.NewUserMessage(anthropicSDK.NewTextBlock(casescout.FormatPrompt(records, prompt))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", casescout.Errorf(casescout.EUNAVAILABLE, "anthropic returned an empty summary")
	}
	return text, nil
}
