package service

import (
	"context"
	"fmt"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
	"github.com/jengzang/media-geotag-mapper/internal/stats"
)

// StatsService handles business logic for travel statistics
type StatsService struct {
	mediaRepo   *repository.MediaRepository
	defaultUnit string
	defaultSort models.SortKey
}

// NewStatsService creates a new stats service
func NewStatsService(mediaRepo *repository.MediaRepository, defaultUnit string, defaultSort models.SortKey) *StatsService {
	return &StatsService{
		mediaRepo:   mediaRepo,
		defaultUnit: defaultUnit,
		defaultSort: defaultSort,
	}
}

// Yearly computes the per-year travel distance of the stored located records
func (s *StatsService) Yearly(ctx context.Context, q models.StatsQuery) (*models.YearlyTravelReport, error) {
	if q.SortBy == "" {
		q.SortBy = string(s.defaultSort)
	}
	if q.Unit == "" {
		q.Unit = s.defaultUnit
	}

	// The year is applied to the report rows, not the sequence, so the step into
	// the year's first record keeps its distance.
	seqQuery := q.SequenceQuery
	seqQuery.Year = 0
	seq, err := s.mediaRepo.Sequence(ctx, seqQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load record sequence: %w", err)
	}

	report := stats.ReportYear(seq, q.Unit, q.Year)
	return &report, nil
}
