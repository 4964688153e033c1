package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/casescout"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the vocabulary used when the summary model has none of
// its own. Counts for OpenAI and Anthropic models are therefore estimates.
const TokenizerModel = "gemini-2.0-flash"

var _ casescout.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens offline.
type TokenCounter struct {
	tok       *tokenizer.LocalTokenizer
	model     string
	estimated bool
}

// NewTokenCounter loads the tokenizer for model, falling back to
// TokenizerModel for anything that is not a Gemini model. An unknown
// Gemini model is EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tc := &TokenCounter{model: model}
	if !strings.HasPrefix(model, "gemini-") {
		tc.model, tc.estimated = TokenizerModel, true
	}

	tok, err := tokenizer.NewLocalTokenizer(tc.model)
	if err != nil {
		return nil, casescout.Errorf(casescout.EINVALID, "no tokenizer for model %q: %v", tc.model, err)
	}
	tc.tok = tok
	return tc, nil
}

// Model returns the tokenizer vocabulary in use.
func (tc *TokenCounter) Model() string { return tc.model }

// Estimated reports whether counts come from a substitute vocabulary.
func (tc *TokenCounter) Estimated() bool { return tc.estimated }

// CountTokens returns the token count of text sent as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	turn := genai.NewContentFromText(text, genai.RoleUser)
	result, err := tc.tok.CountTokens([]*genai.Content{turn}, nil)
	if err != nil {
		return 0, casescout.Errorf(casescout.EINTERNAL, "count tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}
