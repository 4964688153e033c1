// Package sqlite stores runs and their records in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order. The schema version stored in
// PRAGMA user_version is the number of migrations already applied, so
// entries must only ever be appended.
var migrations = []string{
	`CREATE TABLE runs (
		id TEXT PRIMARY KEY,
		site_url TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT '',
		quota INTEGER NOT NULL DEFAULT 0,
		language TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE records (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX idx_records_run_id ON records(run_id);
	CREATE INDEX idx_records_url ON records(url);`,

	`CREATE INDEX idx_records_content_hash ON records(content_hash) WHERE content_hash != '';`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(migrations)

// DB wraps a single-connection SQLite handle.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Pass MemoryPath for a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, configures the connection and migrates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

func (db *DB) pragmas() []string {
	p := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	// In-memory databases cannot use WAL.
	if db.path != MemoryPath {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return p
}

// migrate applies every migration past the stored user_version, each in
// its own transaction together with the version bump.
func (db *DB) migrate(ctx context.Context) error {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// Version returns the schema version recorded in the database.
func (db *DB) Version(ctx context.Context) (int, error) {
	var version int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
