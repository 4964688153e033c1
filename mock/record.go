package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var _ casescout.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of casescout.RecordService.
type RecordService struct {
	CreateRecordFn       func(ctx context.Context, rec *casescout.Record) error
	FindRecordByIDFn     func(ctx context.Context, id string) (*casescout.Record, error)
	FindRecordsFn        func(ctx context.Context, filter casescout.RecordFilter) ([]*casescout.Record, error)
	DeleteRecordsByRunFn func(ctx context.Context, runID string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *casescout.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*casescout.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter casescout.RecordFilter) ([]*casescout.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecordsByRun(ctx context.Context, runID string) error {
	return s.DeleteRecordsByRunFn(ctx, runID)
}
