package casescout

import (
	"context"
	"strings"
	"time"
)

// Run is one discovery-and-extraction pass over a site.
type Run struct {
	ID        string     `json:"id"`
	SiteURL   string     `json:"siteUrl"`
	Keywords  KeywordSet `json:"keywords"`
	Quota     int        `json:"quota"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MinQuota and MaxQuota bound the number of URLs a run may collect.
const (
	MinQuota = 1
	MaxQuota = 20
)

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SiteURL == "" {
		return Errorf(EINVALID, "run site URL required")
	}
	if len(r.Keywords) == 0 {
		return Errorf(EINVALID, "run keywords required")
	}
	if r.Quota < MinQuota || r.Quota > MaxQuota {
		return Errorf(EINVALID, "run quota must be between %d and %d, got %d", MinQuota, MaxQuota, r.Quota)
	}
	return nil
}

// KeywordString returns the keywords as a comma-separated list.
func (r *Run) KeywordString() string {
	return strings.Join(r.Keywords, ",")
}

// RunService represents a service for managing runs.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and all associated records.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID      *string `json:"id"`
	SiteURL *string `json:"siteUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
