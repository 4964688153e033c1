package casescout

import "strings"

// MinTailLength is the minimum length of the path segment that follows a
// keyword segment for a URL to count as a match.
const MinTailLength = 5

// DefaultKeywords are the path segments that conventionally hold customer
// case studies.
var DefaultKeywords = KeywordSet{
	"customer-success-stories",
	"success-stories",
	"case-study",
	"case-studies",
	"customers",
	"customer",
	"customer-success",
	"customer-stories",
	"client-stories",
	"success-story",
	"customer-story",
}

// KeywordSet is an ordered list of path-segment keywords used to recognise
// candidate URLs.
type KeywordSet []string

// NewKeywordSet returns a KeywordSet with blank entries removed and the
// remaining keywords trimmed and lowercased. Order is preserved.
func NewKeywordSet(keywords ...string) KeywordSet {
	set := make(KeywordSet, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		set = append(set, k)
	}
	return set
}

// Matches reports whether rawURL contains a segment /k/ for some keyword k
// whose following segment (the tail) is at least MinTailLength characters,
// is not itself a keyword, contains no keyword, and does not contain
// "customer". A keyword whose tail fails any check does not end the search;
// the remaining keywords are still tried.
func (ks KeywordSet) Matches(rawURL string) bool {
	u := strings.ToLower(rawURL)

	for _, k := range ks {
		k = strings.ToLower(k)
		if k == "" {
			continue
		}

		segment := "/" + k + "/"
		idx := strings.Index(u, segment)
		if idx < 0 {
			continue
		}

		tail := u[idx+len(segment):]
		if i := strings.IndexByte(tail, '/'); i >= 0 {
			tail = tail[:i]
		}

		if ks.acceptsTail(tail) {
			return true
		}
	}

	return false
}

func (ks KeywordSet) acceptsTail(tail string) bool {
	if len(tail) < MinTailLength {
		return false
	}
	for _, k := range ks {
		k = strings.ToLower(k)
		if k == "" {
			continue
		}
		// Containment covers equality.
		if strings.Contains(tail, k) {
			return false
		}
	}
	return !strings.Contains(tail, "customer")
}
