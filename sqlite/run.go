package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/casescout"
	"github.com/google/uuid"
)

var _ casescout.RunService = (*RunService)(nil)

// RunService implements casescout.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run with a generated ID and creation time.
func (s *RunService) CreateRun(ctx context.Context, run *casescout.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, site_url, keywords, quota, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.SiteURL, run.KeywordString(), run.Quota, run.Language,
		run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*casescout.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, site_url, keywords, quota, language, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, casescout.Errorf(casescout.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter casescout.RunFilter) ([]*casescout.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_url, keywords, quota, language, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteURL != nil {
		query.WriteString(" AND site_url = ?")
		args = append(args, *filter.SiteURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*casescout.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Its records go with it.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return casescout.Errorf(casescout.ENOTFOUND, "run not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*casescout.Run, error) {
	var run casescout.Run
	var keywords, createdAt string

	if err := sc.Scan(&run.ID, &run.SiteURL, &keywords, &run.Quota, &run.Language, &createdAt); err != nil {
		return nil, err
	}

	run.Keywords = splitKeywords(keywords)

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &run, nil
}
