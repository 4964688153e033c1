package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var _ casescout.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of casescout.RecordWriter.
type RecordWriter struct {
	CreateRecordFn func(ctx context.Context, rec *casescout.Record) error
}

func (w *RecordWriter) CreateRecord(ctx context.Context, rec *casescout.Record) error {
	return w.CreateRecordFn(ctx, rec)
}
