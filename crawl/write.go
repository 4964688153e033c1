package crawl

import (
	"context"

	"github.com/fwojciec/casescout"
)

// WriteRecords writes records to w in order and stops at the first error.
// It returns the number of records written.
func WriteRecords(ctx context.Context, w casescout.RecordWriter, records []*casescout.Record) (int, error) {
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := w.CreateRecord(ctx, rec); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
