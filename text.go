package casescout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	excessNewlinesRe   = regexp.MustCompile(`\n{3,}`)
	excessWhitespaceRe = regexp.MustCompile(`\s{2,}`)
)

// CleanText normalizes extracted text: runs of three or more newlines become
// two, any run of two or more whitespace characters becomes a single space,
// and leading and trailing whitespace is removed. CleanText is idempotent.
func CleanText(s string) string {
	s = excessNewlinesRe.ReplaceAllString(s, "\n\n")
	s = excessWhitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// encodingArtifacts are sequences left behind by mis-decoded pages.
var encodingArtifacts = strings.NewReplacer(
	"\uFFFD", "",
	"\uFEFF", "",
	"\u200B", "",
	"\u200C", "",
	"\u200D", "",
	"\u00C2\u00A0", " ",
	"\u00A0", " ",
	"\u00E2\u20AC\u2122", "'",
	"\u00E2\u20AC\u02DC", "'",
	"\u00E2\u20AC\u0153", `"`,
	"\u00E2\u20AC\u009D", `"`,
	"\u00E2\u20AC\u201C", "-",
	"\u00E2\u20AC\u201D", "-",
	"\u00E2\u20AC\u00A6", "...",
)

// CallToActionPhrases are removed by CleanStrict wherever they appear.
var CallToActionPhrases = []string{
	"Sign In",
	"Sign Up",
	"Log In",
	"Login",
	"Buy Now",
	"Add to Cart",
	"Learn More",
	"Get Started",
	"Request a Demo",
	"Book a Demo",
	"Contact Sales",
	"Start Free Trial",
	"Subscribe",
	"Read More",
}

var (
	callToActionRe = compileCallToAction(CallToActionPhrases)
	boilerplateRe  = regexp.MustCompile(`(?i)(\x{00A9}|\(c\)\s*\d{4}|\bcopyright\b|\ball rights reserved\b)`)
)

func compileCallToAction(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// CleanStrict applies CleanText and additionally removes encoding artifacts
// and call-to-action phrases, and truncates at the first copyright or
// rights-reserved notice. Removing a phrase can bring a new one together,
// so the rules are applied until the text stops changing; every rule
// shortens the text, which bounds the loop.
func CleanStrict(s string) string {
	for {
		next := cleanStrictOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func cleanStrictOnce(s string) string {
	s = encodingArtifacts.Replace(s)
	s = callToActionRe.ReplaceAllString(s, " ")
	if loc := boilerplateRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return CleanText(s)
}

// Truncate returns at most n runes of s. A non-positive n disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
