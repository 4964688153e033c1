// Package whatlang implements casescout language detection: page hints
// first, then statistical text classification with whatlanggo.
package whatlang

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of an ISO 639 code such as "de" or
// "pt-BR", or "Unknown".
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "Unknown"
	}
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return "Unknown"
}

// primaryCode reduces a language list such as "en-US, fr;q=0.8" to the
// lowercase primary subtag of its first entry.
func primaryCode(value string) string {
	first, _, _ := strings.Cut(value, ",")
	first, _, _ = strings.Cut(first, ";")
	primary, _, _ := strings.Cut(strings.TrimSpace(first), "-")
	primary, _, _ = strings.Cut(primary, "_")
	return strings.ToLower(strings.TrimSpace(primary))
}
