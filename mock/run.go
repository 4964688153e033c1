package mock

import (
	"context"

	"github.com/fwojciec/casescout"
)

var _ casescout.RunService = (*RunService)(nil)

// RunService is a mock implementation of casescout.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *casescout.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*casescout.Run, error)
	FindRunsFn    func(ctx context.Context, filter casescout.RunFilter) ([]*casescout.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *casescout.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*casescout.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter casescout.RunFilter) ([]*casescout.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
