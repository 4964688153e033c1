package crawl

import (
	"context"
	"strings"

	"github.com/fwojciec/casescout"
)

// ValidatorFunc adapts a function to casescout.Validator.
type ValidatorFunc func(ctx context.Context, url string) bool

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// AcceptAll accepts every candidate.
var AcceptAll casescout.Validator = ValidatorFunc(func(context.Context, string) bool { return true })

var _ casescout.Validator = (*LanguageValidator)(nil)

// LanguageValidator accepts pages written in one language.
type LanguageValidator struct {
	Detector casescout.LanguageDetector

	// Language is matched against the detected language's English name or
	// code, ignoring case. Empty accepts every page.
	Language string
}

// Validate detects the page's language and compares it to v.Language.
func (v *LanguageValidator) Validate(ctx context.Context, url string) bool {
	want := strings.TrimSpace(v.Language)
	if want == "" {
		return true
	}
	lang := v.Detector.DetectLanguage(ctx, url)
	if !lang.Known() {
		return false
	}
	return strings.EqualFold(lang.Name, want) || strings.EqualFold(lang.Code, want)
}
