package casescout

import (
	"net/url"
	"strings"
)

// NormalizeSiteURL reduces a user-supplied site address to its home page,
// scheme://host/. A missing scheme defaults to https.
func NormalizeSiteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "site URL required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid site URL %q", raw)
	}

	return u.Scheme + "://" + u.Host + "/", nil
}

// Domain returns the host of rawURL, or "" if it cannot be parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
