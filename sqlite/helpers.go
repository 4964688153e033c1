package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/casescout"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before an OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// hashContent computes the xxHash of a record's title and body as a hex string.
func hashContent(title, body string) string {
	h := xxhash.New()
	_, _ = h.WriteString(title)
	_, _ = h.WriteString("\n\n")
	_, _ = h.WriteString(body)
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, h.Sum64()))
}

// splitKeywords reverses Run.KeywordString.
func splitKeywords(s string) casescout.KeywordSet {
	if s == "" {
		return nil
	}
	return casescout.NewKeywordSet(strings.Split(s, ",")...)
}
