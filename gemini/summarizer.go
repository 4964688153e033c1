// Package gemini summarizes records and estimates prompt size with Google
// Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/casescout"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var _ casescout.Summarizer = (*Summarizer)(nil)

// Summarizer implements casescout.Summarizer using Google Gemini.
type Summarizer struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewSummarizer creates a new Summarizer. An empty model selects
// DefaultModel; a non-positive maxTokens leaves the output unbounded.
func NewSummarizer(client *genai.Client, model string, maxTokens int) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model, maxTokens: maxTokens}
}

// Summarize sends the successful records and prompt to Gemini.
func (s *Summarizer) Summarize(ctx context.Context, records []*casescout.Record, prompt string) (string, error) {
	records = casescout.SucceededRecords(records)
	if len(records) == 0 {
		return "", casescout.Errorf(casescout.EINVALID, "no records to summarize")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: casescout.FormatPrompt(records, prompt)}},
		}},
		BuildConfig(s.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return "", casescout.Errorf(casescout.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", casescout.Errorf(casescout.EUNAVAILABLE, "gemini returned an empty summary")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(maxTokens int) *genai.GenerateContentConfig {
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an analyst reading customer case studies published by a company. Base your answer only on the case studies provided.",
			}},
		},
		Temperature: &temp,
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	return config
}
