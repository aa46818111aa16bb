package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-auditor/constants"
)

// DocumentRun is one document's row in the run index.
type DocumentRun struct {
	ID           uuid.UUID
	RunID        uuid.UUID
	Prefix       string
	Status       constants.DocStatus
	LineItems    *int
	Verified     *bool
	Confidence   *float64
	ErrorMessage *string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// RunStats aggregates a finished batch run.
type RunStats struct {
	Processed int
	Skipped   int
	Failed    int
}

// RunRepository records batch runs and their per-document outcomes.
type RunRepository interface {
	StartRun(ctx context.Context) (uuid.UUID, error)
	FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error
	StartDocument(ctx context.Context, runID uuid.UUID, prefix string) (uuid.UUID, error)
	MarkExtracted(ctx context.Context, docID uuid.UUID, lineItems int) error
	FinishVerified(ctx context.Context, docID uuid.UUID, verified bool, confidence float64) error
	FinishSkipped(ctx context.Context, docID uuid.UUID, reason string) error
	FinishFailed(ctx context.Context, docID uuid.UUID, reason string) error
	ListDocuments(ctx context.Context, runID uuid.UUID) ([]DocumentRun, error)
}

type runRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRunRepository(db *sql.DB, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, logger: logger}
}

func (r *runRepository) StartRun(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO batch_run (id, started_at) VALUES (?, ?)`,
		id.String(), time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert batch run: %w", err)
	}
	return id, nil
}

func (r *runRepository) FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE batch_run SET finished_at = ?, processed = ?, skipped = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), stats.Processed, stats.Skipped, stats.Failed, runID.String())
	if err != nil {
		return fmt.Errorf("finish batch run: %w", err)
	}
	return nil
}

func (r *runRepository) StartDocument(ctx context.Context, runID uuid.UUID, prefix string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_run (id, run_id, prefix, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), runID.String(), prefix, string(constants.DocStatusRunning), time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert document run: %w", err)
	}
	return id, nil
}

func (r *runRepository) MarkExtracted(ctx context.Context, docID uuid.UUID, lineItems int) error {
	return r.update(ctx, docID,
		`UPDATE document_run SET status = ?, line_items = ? WHERE id = ?`,
		string(constants.DocStatusExtracted), lineItems, docID.String())
}

func (r *runRepository) FinishVerified(ctx context.Context, docID uuid.UUID, verified bool, confidence float64) error {
	return r.update(ctx, docID,
		`UPDATE document_run SET status = ?, verified = ?, confidence = ?, finished_at = ? WHERE id = ?`,
		string(constants.DocStatusVerified), verified, confidence, time.Now().UTC(), docID.String())
}

func (r *runRepository) FinishSkipped(ctx context.Context, docID uuid.UUID, reason string) error {
	return r.update(ctx, docID,
		`UPDATE document_run SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(constants.DocStatusSkipped), reason, time.Now().UTC(), docID.String())
}

func (r *runRepository) FinishFailed(ctx context.Context, docID uuid.UUID, reason string) error {
	return r.update(ctx, docID,
		`UPDATE document_run SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(constants.DocStatusFailed), reason, time.Now().UTC(), docID.String())
}

func (r *runRepository) update(ctx context.Context, docID uuid.UUID, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update document run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.logger.Warn("document run not found", "doc_id", docID)
	}
	return nil
}

func (r *runRepository) ListDocuments(ctx context.Context, runID uuid.UUID) ([]DocumentRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, prefix, status, line_items, verified, confidence, error_message, started_at, finished_at
		 FROM document_run WHERE run_id = ? ORDER BY started_at, prefix`,
		runID.String())
	if err != nil {
		return nil, fmt.Errorf("query document runs: %w", err)
	}
	defer rows.Close()

	var docs []DocumentRun
	for rows.Next() {
		var (
			d          DocumentRun
			id, rid    string
			status     string
			lineItems  sql.NullInt64
			verified   sql.NullBool
			confidence sql.NullFloat64
			errMsg     sql.NullString
			finishedAt sql.NullTime
		)
		if err := rows.Scan(&id, &rid, &d.Prefix, &status, &lineItems, &verified, &confidence, &errMsg, &d.StartedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan document run: %w", err)
		}
		d.ID, _ = uuid.Parse(id)
		d.RunID, _ = uuid.Parse(rid)
		d.Status = constants.DocStatus(status)
		if lineItems.Valid {
			n := int(lineItems.Int64)
			d.LineItems = &n
		}
		if verified.Valid {
			v := verified.Bool
			d.Verified = &v
		}
		if confidence.Valid {
			c := confidence.Float64
			d.Confidence = &c
		}
		if errMsg.Valid {
			m := errMsg.String
			d.ErrorMessage = &m
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			d.FinishedAt = &t
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
