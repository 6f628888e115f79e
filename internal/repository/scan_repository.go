package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// ScanRepository handles database operations for scan jobs
type ScanRepository struct {
	db *sql.DB
}

// NewScanRepository creates a new scan job repository
func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create inserts a new scan job
func (r *ScanRepository) Create(ctx context.Context, job models.ScanJob) error {
	folders, err := json.Marshal(job.Folders)
	if err != nil {
		return fmt.Errorf("failed to encode folders: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO scan_jobs (id, folders_json, status, started_at) VALUES (?, ?, ?, ?)`,
		job.ID, string(folders), string(job.Status), job.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create scan job: %w", err)
	}
	return nil
}

// Finish records the final status and counts of a scan job
func (r *ScanRepository) Finish(ctx context.Context, job models.ScanJob) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scan_jobs SET status = ?, completed_at = ?, total = ?, pictures = ?, clips = ?,
		located = ?, skipped = ?, last_error = ? WHERE id = ?`,
		string(job.Status), job.CompletedAt, job.Total, job.Pictures, job.Clips,
		job.Located, job.Skipped, job.LastError, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update scan job: %w", err)
	}
	return nil
}

const scanColumns = `id, folders_json, status, started_at, completed_at, total, pictures, clips, located, skipped, last_error`

// GetByID retrieves a scan job by ID
func (r *ScanRepository) GetByID(ctx context.Context, id string) (*models.ScanJob, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, "SELECT "+scanColumns+" FROM scan_jobs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan job: %w", err)
	}
	return &job, nil
}

// List retrieves the most recent scan jobs
func (r *ScanRepository) List(ctx context.Context, limit int) ([]models.ScanJob, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+scanColumns+" FROM scan_jobs ORDER BY started_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.ScanJob{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(s scanner) (models.ScanJob, error) {
	var (
		job     models.ScanJob
		folders string
		status  string
	)
	err := s.Scan(&job.ID, &folders, &status, &job.StartedAt, &job.CompletedAt,
		&job.Total, &job.Pictures, &job.Clips, &job.Located, &job.Skipped, &job.LastError)
	if err != nil {
		return models.ScanJob{}, err
	}

	job.Status = models.ScanStatus(status)
	if err := json.Unmarshal([]byte(folders), &job.Folders); err != nil {
		return models.ScanJob{}, fmt.Errorf("failed to decode folders: %w", err)
	}
	return job, nil
}
