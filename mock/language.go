package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var (
	_ casescout.LanguageClassifier = (*LanguageClassifier)(nil)
	_ casescout.LanguageDetector   = (*LanguageDetector)(nil)
	_ casescout.Validator          = (*Validator)(nil)
)

// LanguageClassifier is a mock implementation of casescout.LanguageClassifier.
type LanguageClassifier struct {
	ClassifyFn func(text string) casescout.Language
}

func (c *LanguageClassifier) Classify(text string) casescout.Language {
	return c.ClassifyFn(text)
}

// LanguageDetector is a mock implementation of casescout.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(ctx context.Context, url string) casescout.Language
}

func (d *LanguageDetector) DetectLanguage(ctx context.Context, url string) casescout.Language {
	return d.DetectLanguageFn(ctx, url)
}

// Validator is a mock implementation of casescout.Validator.
type Validator struct {
	ValidateFn func(ctx context.Context, url string) bool
}

func (v *Validator) Validate(ctx context.Context, url string) bool {
	return v.ValidateFn(ctx, url)
}
