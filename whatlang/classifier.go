package whatlang

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/casescout"
)

// Ensure Classifier implements casescout.LanguageClassifier at compile time.
var _ casescout.LanguageClassifier = (*Classifier)(nil)

// Classifier guesses the language of text from its trigram profile.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the most likely language of text, or
// casescout.UnknownLanguage when text has nothing to classify.
func (c *Classifier) Classify(text string) casescout.Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return casescout.UnknownLanguage
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return casescout.UnknownLanguage
	}

	return casescout.Language{
		Code:       code,
		Name:       LanguageName(code),
		Confidence: info.Confidence,
	}
}
