package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/casescout"
	"github.com/google/uuid"
)

var _ casescout.RecordService = (*RecordService)(nil)

// RecordService implements casescout.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord stores a record under its run. The ID, creation time and
// content hash are generated; failed records carry no hash.
func (s *RecordService) CreateRecord(ctx context.Context, rec *casescout.Record) error {
	if rec.RunID == "" {
		return casescout.Errorf(casescout.EINVALID, "record run ID required")
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	rec.ContentHash = ""
	if !rec.Failed() {
		rec.ContentHash = hashContent(rec.Title, rec.Body)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, run_id, url, title, body, error, content_hash, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.URL, rec.Title, rec.Body, rec.Error, rec.ContentHash,
		rec.Position, rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*casescout.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, run_id, url, title, body, error, content_hash, position, created_at
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, casescout.Errorf(casescout.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, ordered by position.
func (s *RecordService) FindRecords(ctx context.Context, filter casescout.RecordFilter) ([]*casescout.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, url, title, body, error, content_hash, position, created_at FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.Succeeded {
		query.WriteString(" AND error = ''")
	}

	query.WriteString(" ORDER BY position ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*casescout.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteRecordsByRun removes all records for a run.
func (s *RecordService) DeleteRecordsByRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE run_id = ?", runID)
	return err
}

func scanRecord(sc scanner) (*casescout.Record, error) {
	var rec casescout.Record
	var createdAt string

	if err := sc.Scan(&rec.ID, &rec.RunID, &rec.URL, &rec.Title, &rec.Body, &rec.Error,
		&rec.ContentHash, &rec.Position, &createdAt); err != nil {
		return nil, err
	}

	var err error
	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
