package casescout

import "context"

// Language is a detected natural language.
type Language struct {
	// Code is the lowercase ISO 639-1 code, or "unknown".
	Code string `json:"code"`

	// Name is the English name of the language, or "Unknown".
	Name string `json:"name"`

	// Confidence is between 0 and 1.
	Confidence float64 `json:"confidence"`
}

// UnknownLanguage is returned when no language could be determined.
var UnknownLanguage = Language{Code: "unknown", Name: "Unknown", Confidence: 0}

// Known reports whether the language was determined.
func (l Language) Known() bool {
	return l.Code != "" && l.Code != UnknownLanguage.Code
}

// LanguageClassifier guesses the language of plain text.
type LanguageClassifier interface {
	Classify(text string) Language
}

// LanguageDetector determines the language of a web page.
type LanguageDetector interface {
	// DetectLanguage fetches the page and inspects headers, markup and
	// text. Failures yield UnknownLanguage rather than an error.
	DetectLanguage(ctx context.Context, url string) Language
}

// Validator decides whether a discovered candidate counts toward the quota.
type Validator interface {
	Validate(ctx context.Context, url string) bool
}
