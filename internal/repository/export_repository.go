package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/raidatlas/raidatlas-api/internal/models"
)

// ExportRepository persists schedule sheet export jobs.
type ExportRepository struct {
	db *sqlx.DB
}

// NewExportRepository constructs an export repository.
func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create inserts a pending job.
func (r *ExportRepository) Create(ctx context.Context, job *models.ExportJob) error {
	const query = `INSERT INTO export_jobs (id, event_id, timezone, city_ids, status, file_path, error, created_at, completed_at)
VALUES (:id, :event_id, :timezone, :city_ids, :status, :file_path, :error, :created_at, :completed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// GetByID fetches a job.
func (r *ExportRepository) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	const query = `SELECT id, event_id, timezone, city_ids, status, file_path, error, created_at, completed_at
FROM export_jobs WHERE id = $1`
	var job models.ExportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkProcessing flips a job into the processing state.
func (r *ExportRepository) MarkProcessing(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE export_jobs SET status = $1 WHERE id = $2", models.ExportStatusProcessing, id); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	return nil
}

// MarkCompleted records the generated file path.
func (r *ExportRepository) MarkCompleted(ctx context.Context, id, filePath string, completedAt time.Time) error {
	const query = "UPDATE export_jobs SET status = $1, file_path = $2, completed_at = $3 WHERE id = $4"
	if _, err := r.db.ExecContext(ctx, query, models.ExportStatusCompleted, filePath, completedAt, id); err != nil {
		return fmt.Errorf("mark export completed: %w", err)
	}
	return nil
}

// MarkFailed records the failure reason.
func (r *ExportRepository) MarkFailed(ctx context.Context, id, reason string, completedAt time.Time) error {
	const query = "UPDATE export_jobs SET status = $1, error = $2, completed_at = $3 WHERE id = $4"
	if _, err := r.db.ExecContext(ctx, query, models.ExportStatusFailed, reason, completedAt, id); err != nil {
		return fmt.Errorf("mark export failed: %w", err)
	}
	return nil
}
