package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/pkg/metrics"
)

// SQLiteStore persists statuses and results in a single evaluations table.
// The result column holds the JSON-encoded evaluation; status fields are
// stored as columns so listing and retention do not decode payloads.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL,
	progress     INTEGER NOT NULL DEFAULT 0,
	message      TEXT NOT NULL DEFAULT '',
	started_at   DATETIME NOT NULL,
	completed_at DATETIME,
	result       TEXT
);
CREATE INDEX IF NOT EXISTS idx_evaluations_status ON evaluations(status);
CREATE INDEX IF NOT EXISTS idx_evaluations_completed_at ON evaluations(completed_at);
`

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	s := &SQLiteStore{db: db}
	metrics.UpdateStoreRecords(s.Count(context.Background()))
	return s, nil
}

// SetStatus upserts the lifecycle snapshot for a job.
func (s *SQLiteStore) SetStatus(ctx context.Context, id string, status model.JobStatus) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	var completed interface{}
	if !status.CompletedAt.IsZero() {
		completed = status.CompletedAt
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, status, progress, message, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			progress = excluded.progress,
			message = excluded.message,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at`,
		id, string(status.Status), status.Progress, status.Message, status.StartedAt, completed,
	)
	if err != nil {
		return fmt.Errorf("set status %s: %w", id, err)
	}
	metrics.UpdateStoreRecords(s.Count(ctx))
	return nil
}

// Status returns the lifecycle snapshot for a job.
func (s *SQLiteStore) Status(ctx context.Context, id string) (model.JobStatus, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var (
		st        model.JobStatus
		status    string
		completed sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT status, progress, message, started_at, completed_at
		FROM evaluations WHERE id = ?`, id,
	).Scan(&status, &st.Progress, &st.Message, &st.StartedAt, &completed)
	if err == sql.ErrNoRows {
		return model.JobStatus{}, ErrNotFound
	}
	if err != nil {
		return model.JobStatus{}, fmt.Errorf("query status %s: %w", id, err)
	}
	st.Status = model.Status(status)
	if completed.Valid {
		st.CompletedAt = completed.Time
	}
	return st, nil
}

// Put stores a completed evaluation keyed by its id.
func (s *SQLiteStore) Put(ctx context.Context, eval model.Evaluation) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	payload, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("encode evaluation %s: %w", eval.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, status, progress, message, started_at, result)
		VALUES (?, ?, 100, '', ?, ?)
		ON CONFLICT(id) DO UPDATE SET result = excluded.result`,
		eval.ID, string(model.StatusCompleted), eval.Metadata.ProcessedAt, string(payload),
	)
	if err != nil {
		return fmt.Errorf("put evaluation %s: %w", eval.ID, err)
	}
	return nil
}

// Get returns the completed evaluation for a job.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Evaluation, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var payload sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT result FROM evaluations WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows || (err == nil && !payload.Valid) {
		return model.Evaluation{}, ErrNotFound
	}
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("query evaluation %s: %w", id, err)
	}

	var eval model.Evaluation
	if err := json.Unmarshal([]byte(payload.String), &eval); err != nil {
		return model.Evaluation{}, fmt.Errorf("decode evaluation %s: %w", id, err)
	}
	return eval, nil
}

// Delete removes the status and any result for a job.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete evaluation %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	metrics.UpdateStoreRecords(s.Count(ctx))
	return nil
}

// List returns a summary of every tracked job.
func (s *SQLiteStore) List(ctx context.Context) ([]model.JobSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, progress, message, started_at FROM evaluations`)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	out := []model.JobSummary{}
	for rows.Next() {
		var (
			summary model.JobSummary
			status  string
		)
		if err := rows.Scan(&summary.ID, &status, &summary.Progress, &summary.Message, &summary.StartedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation row: %w", err)
		}
		summary.Status = model.Status(status)
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Count returns the number of tracked jobs.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// DeleteCompletedBefore removes terminal jobs completed before the cutoff.
func (s *SQLiteStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM evaluations
		WHERE status IN (?, ?) AND completed_at IS NOT NULL AND completed_at < ?`,
		string(model.StatusCompleted), string(model.StatusError), cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep evaluations: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		metrics.RecordStoreSweepDeleted(int(n))
		metrics.UpdateStoreRecords(s.Count(ctx))
	}
	return int(n), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
