package crawl

import (
	"fmt"
	"strings"

	"github.com/fwojciec/casescout"
)

// TruncateURL shortens a URL for a progress line. The scheme is dropped
// first; if the rest still exceeds width, its tail is kept behind an
// ellipsis since the final path segment names the story.
func TruncateURL(url string, width int) string {
	if width <= 0 {
		return ""
	}
	s := url
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	n := casescout.RuneLen(s)
	if n <= width {
		return s
	}
	r := []rune(s)
	if width <= len(ellipsis) {
		return string(r[:width])
	}
	return ellipsis + string(r[n-width+len(ellipsis):])
}

const ellipsis = "..."

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value, suffix := float64(n)/unit, "KB"
	if value >= unit {
		value, suffix = value/unit, "MB"
	}
	return fmt.Sprintf("%.1f %s", value, suffix)
}

// FormatTokens renders an approximate token count.
func FormatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("~%d tokens", n)
	}
	return fmt.Sprintf("~%dk tokens", (n+500)/1000)
}

// Stats tallies the outcome of a scrape.
type Stats struct {
	Succeeded int
	Failed    int
	// Empty counts failures where the page held no extractable content.
	Empty int
	Bytes int
}

// Summarize tallies records. Bytes counts only successful bodies.
func Summarize(records []*casescout.Record) Stats {
	var s Stats
	for _, rec := range records {
		switch {
		case rec.Error == casescout.ErrNoContent:
			s.Failed++
			s.Empty++
		case rec.Failed():
			s.Failed++
		default:
			s.Succeeded++
			s.Bytes += len(rec.Body)
		}
	}
	return s
}

func (s Stats) String() string {
	out := fmt.Sprintf("extracted %d, failed %d", s.Succeeded, s.Failed)
	if s.Empty > 0 {
		out += fmt.Sprintf(" (%d without content)", s.Empty)
	}
	return out + ", " + FormatBytes(s.Bytes)
}
