package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS batch_run (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	processed   INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS document_run (
	id            TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL REFERENCES batch_run(id),
	prefix        TEXT NOT NULL,
	status        TEXT NOT NULL,
	line_items    INTEGER,
	verified      INTEGER,
	confidence    REAL,
	error_message TEXT,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_document_run_run_id ON document_run(run_id);
`

// Open opens the sqlite run index and applies the schema. A DSN of
// ":memory:" gives an ephemeral index, used by tests.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("opening run index", "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer; one pooled connection also keeps
	// :memory: databases on the same handle.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Debug("run index ready")
	return db, nil
}

// Close closes the run index gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && logger != nil {
		logger.Error("failed to close run index", "error", err)
	}
}
