package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/normalize"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
)

// CorrectionService applies explicit fixes to stored coordinates
type CorrectionService struct {
	mediaRepo *repository.MediaRepository
}

// NewCorrectionService creates a new correction service
func NewCorrectionService(mediaRepo *repository.MediaRepository) *CorrectionService {
	return &CorrectionService{
		mediaRepo: mediaRepo,
	}
}

// FlipLongitude inverts the longitude of every stored record strictly inside rect,
// optionally limited to a folder prefix, and returns how many records changed
func (s *CorrectionService) FlipLongitude(ctx context.Context, rect models.Rect, folder string) (int, error) {
	if !rect.Valid() {
		return 0, ErrInvalidRect
	}

	records, err := s.mediaRepo.ListAll(ctx, folder)
	if err != nil {
		return 0, fmt.Errorf("failed to load media records: %w", err)
	}

	corrected, n := normalize.FlipLongitude(records, rect)
	if n == 0 {
		return 0, nil
	}

	changed := make([]models.MediaRecord, 0, n)
	for i, r := range corrected {
		if r.LongitudeFlipped && !records[i].LongitudeFlipped {
			changed = append(changed, r)
		}
	}
	if err := s.mediaRepo.UpdateLongitudes(ctx, changed); err != nil {
		return 0, fmt.Errorf("failed to store corrected longitudes: %w", err)
	}

	log.Info().Int("flipped", n).Interface("rect", rect).Msg("Longitudes flipped")
	return n, nil
}
