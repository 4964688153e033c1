package casescout

import (
	"context"
	"time"
)

// ErrNoContent is the error message stored on a record when neither a title
// nor a body could be extracted.
const ErrNoContent = "no content extracted"

// Record is the result of processing one URL: either extracted content or
// an error, never both.
type Record struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Error       string    `json:"error,omitempty"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewRecord builds a record from an extraction. An empty extraction becomes
// a failed record with ErrNoContent.
func NewRecord(url string, ex *Extraction) *Record {
	if ex.Empty() {
		return &Record{URL: url, Error: ErrNoContent}
	}
	return &Record{URL: url, Title: ex.Title, Body: ex.Body}
}

// FailedRecord builds a record for a URL that could not be processed.
// Title and body are left empty. Application errors are stored by their
// message; any other error by its text.
func FailedRecord(url string, err error) *Record {
	msg := ErrNoContent
	switch {
	case err == nil:
	case ErrorCode(err) != EINTERNAL:
		msg = ErrorMessage(err)
	default:
		msg = err.Error()
	}
	return &Record{URL: url, Error: msg}
}

// Failed reports whether the record carries an error.
func (r *Record) Failed() bool {
	return r.Error != ""
}

// SucceededRecords returns the records that carry content, in order.
func SucceededRecords(records []*Record) []*Record {
	var out []*Record
	for _, rec := range records {
		if rec != nil && !rec.Failed() {
			out = append(out, rec)
		}
	}
	return out
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	hasContent := r.Title != "" || r.Body != ""
	if hasContent && r.Error != "" {
		return Errorf(EINVALID, "record %q has both content and an error", r.URL)
	}
	if !hasContent && r.Error == "" {
		return Errorf(EINVALID, "record %q has neither content nor an error", r.URL)
	}
	return nil
}

// RecordWriter writes records to storage.
type RecordWriter interface {
	CreateRecord(ctx context.Context, rec *Record) error
}

// RecordService represents a service for managing records.
type RecordService interface {
	// CreateRecord creates a new record.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter, ordered by position.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecordsByRun removes all records for a run.
	DeleteRecordsByRun(ctx context.Context, runID string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID    *string `json:"id"`
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	// ContentHash matches records whose title and body hash to the value.
	ContentHash *string `json:"contentHash"`

	// Succeeded restricts results to records without an error.
	Succeeded bool `json:"succeeded"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
