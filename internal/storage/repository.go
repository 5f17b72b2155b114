// Package storage persists the scan-run audit log in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// ErrDisabled is returned by Recent when no database is configured.
var ErrDisabled = errors.New("scan history storage is disabled")

// ScanRunRepository defines contract for the audit log.
type ScanRunRepository interface {
	Record(ctx context.Context, run models.ScanRun) error
	Recent(ctx context.Context, limit int) ([]models.ScanRun, error)
}

type scanRunRepository struct {
	db *sql.DB
}

func NewScanRunRepository(db *sql.DB) ScanRunRepository {
	return &scanRunRepository{db: db}
}

// Record inserts one run. A missing ID is generated.
func (r *scanRunRepository) Record(ctx context.Context, run models.ScanRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scan_runs (id, request_id, filter_type, row_count, duration_ms, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.RequestID, run.FilterType, run.RowCount, run.DurationMS, run.Status)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", describe(err))
	}
	return nil
}

// Recent returns the newest runs first. The slice is never nil.
func (r *scanRunRepository) Recent(ctx context.Context, limit int) ([]models.ScanRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, filter_type, row_count, duration_ms, status, created_at
		FROM scan_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan runs: %w", describe(err))
	}
	defer rows.Close()

	out := make([]models.ScanRun, 0, limit)
	for rows.Next() {
		var run models.ScanRun
		if err := rows.Scan(&run.ID, &run.RequestID, &run.FilterType, &run.RowCount, &run.DurationMS, &run.Status, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan runs: %w", err)
	}
	return out, nil
}

// describe keeps the Postgres error code in the message so logs show which
// constraint or relation failed.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w (code %s)", err, pqErr.Code)
	}
	return err
}

// NopRepository is used when Postgres is disabled: Record discards runs and
// Recent reports ErrDisabled.
type NopRepository struct{}

func (NopRepository) Record(context.Context, models.ScanRun) error { return nil }

func (NopRepository) Recent(context.Context, int) ([]models.ScanRun, error) {
	return nil, ErrDisabled
}
