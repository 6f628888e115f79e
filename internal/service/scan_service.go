package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
)

// ScanService imports folders into the media store
type ScanService struct {
	mediaRepo *repository.MediaRepository
	scanRepo  *repository.ScanRepository
	builder   *media.Builder
}

// NewScanService creates a new scan service
func NewScanService(mediaRepo *repository.MediaRepository, scanRepo *repository.ScanRepository, builder *media.Builder) *ScanService {
	return &ScanService{
		mediaRepo: mediaRepo,
		scanRepo:  scanRepo,
		builder:   builder,
	}
}

// Scan walks the folders, builds a record per media file and stores the records.
// The returned job is persisted in every outcome; records built before a cancellation
// are kept.
func (s *ScanService) Scan(ctx context.Context, req models.ScanRequest) (*models.ScanJob, error) {
	if len(req.Folders) == 0 {
		return nil, ErrNoFolders
	}

	job := models.ScanJob{
		ID:        uuid.NewString(),
		Folders:   req.Folders,
		Status:    models.ScanStatusRunning,
		StartedAt: time.Now().Unix(),
	}
	if err := s.scanRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create scan job: %w", err)
	}
	log.Info().Str("scan", job.ID).Strs("folders", job.Folders).Msg("Scan started")

	items, err := media.Walk(ctx, req.Folders, req.FilesPerFolder)
	if err != nil {
		return s.finish(job, err)
	}

	result, buildErr := s.builder.Build(ctx, items)
	job.Total = result.Total()
	job.Pictures = result.Pictures
	job.Clips = result.Clips
	job.Located = result.Located
	job.Skipped = result.Skipped

	// Partial batches are stored on a cancelled context too.
	if err := s.mediaRepo.UpsertBatch(context.WithoutCancel(ctx), result.Records); err != nil {
		return s.finish(job, fmt.Errorf("failed to store media records: %w", err))
	}

	return s.finish(job, buildErr)
}

func (s *ScanService) finish(job models.ScanJob, cause error) (*models.ScanJob, error) {
	completed := time.Now().Unix()
	job.CompletedAt = &completed

	switch {
	case cause == nil:
		job.Status = models.ScanStatusCompleted
	case errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded):
		job.Status = models.ScanStatusCancelled
	default:
		job.Status = models.ScanStatusFailed
	}
	if cause != nil {
		msg := cause.Error()
		job.LastError = &msg
	}

	if err := s.scanRepo.Finish(context.Background(), job); err != nil {
		return &job, fmt.Errorf("failed to finish scan job: %w", err)
	}

	log.Info().
		Str("scan", job.ID).
		Str("status", string(job.Status)).
		Int("located", job.Located).
		Int("records", job.Pictures+job.Clips).
		Msgf("%d of %d records located", job.Located, job.Pictures+job.Clips)

	if cause != nil {
		return &job, cause
	}
	return &job, nil
}

// GetScan retrieves a scan job by id
func (s *ScanService) GetScan(ctx context.Context, id string) (*models.ScanJob, error) {
	job, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan job: %w", err)
	}
	if job == nil {
		return nil, ErrScanNotFound
	}
	return job, nil
}

// ListScans retrieves the most recent scan jobs
func (s *ScanService) ListScans(ctx context.Context, limit int) ([]models.ScanJob, error) {
	jobs, err := s.scanRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan jobs: %w", err)
	}
	return jobs, nil
}
