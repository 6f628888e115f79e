package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/render"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
)

// MediaService handles business logic for stored media records
type MediaService struct {
	mediaRepo *repository.MediaRepository
}

// NewMediaService creates a new media service
func NewMediaService(mediaRepo *repository.MediaRepository) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
	}
}

// List retrieves media records with filtering and pagination
func (s *MediaService) List(ctx context.Context, filter models.MediaFilter) (*models.MediaRecordsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	if filter.MediaType != "" {
		mt := models.ParseMediaType(filter.MediaType)
		if string(mt) != strings.ToLower(filter.MediaType) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMediaType, filter.MediaType)
		}
		filter.MediaType = string(mt)
	}

	records, total, err := s.mediaRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list media records: %w", err)
	}

	return &models.MediaRecordsResponse{
		Data:       records,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// Get retrieves the record stored for path
func (s *MediaService) Get(ctx context.Context, path string) (*models.MediaRecord, error) {
	rec, err := s.mediaRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get media record: %w", err)
	}
	if rec == nil {
		return nil, ErrMediaNotFound
	}
	return rec, nil
}

// Summary counts stored and located records
func (s *MediaService) Summary(ctx context.Context) (*models.MediaSummary, error) {
	total, located, err := s.mediaRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count media records: %w", err)
	}
	return &models.MediaSummary{
		Total:   total,
		Located: located,
		Message: fmt.Sprintf("%d of %d records located", located, total),
	}, nil
}

// ExportCSV writes every record under folder (all records when empty) as CSV
func (s *MediaService) ExportCSV(ctx context.Context, w io.Writer, folder string) (int, error) {
	records, err := s.mediaRepo.ListAll(ctx, folder)
	if err != nil {
		return 0, fmt.Errorf("failed to load media records: %w", err)
	}
	if err := render.WriteCSV(w, records); err != nil {
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}
	return len(records), nil
}
