package service

import (
	"context"
	"fmt"
	"io"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/render"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
	"github.com/jengzang/media-geotag-mapper/internal/spatial"
)

const defaultMapTitle = "Media Locations"

// MapService builds map views of the stored located records
type MapService struct {
	mediaRepo   *repository.MediaRepository
	style       render.MapStyle
	paths       spatial.PathOptions
	defaultSort models.SortKey
}

// NewMapService creates a new map service
func NewMapService(mediaRepo *repository.MediaRepository, style render.MapStyle, paths spatial.PathOptions, defaultSort models.SortKey) *MapService {
	return &MapService{
		mediaRepo:   mediaRepo,
		style:       style,
		paths:       paths,
		defaultSort: defaultSort,
	}
}

// MapView is the ordered sequence with its markers and paths
type MapView struct {
	Title    string               `json:"title"`
	SortKey  models.SortKey       `json:"sortKey"`
	Markers  []models.Marker      `json:"markers"`
	Segments []models.PathSegment `json:"segments"`

	ordered models.OrderedRecords
}

// View loads the sequence selected by q and derives markers and, unless disabled, paths
func (s *MapService) View(ctx context.Context, q models.MapQuery) (*MapView, error) {
	if q.SortBy == "" {
		q.SortBy = string(s.defaultSort)
	}
	seq, err := s.mediaRepo.Sequence(ctx, q.SequenceQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load record sequence: %w", err)
	}

	opts := s.options(q)
	view := &MapView{
		Title:   q.Title,
		SortKey: seq.Key,
		Markers: render.Markers(seq, opts.LongitudeCutoff),
		ordered: seq,
	}
	if view.Title == "" {
		view.Title = defaultMapTitle
	}
	if q.Paths == nil || *q.Paths {
		view.Segments = spatial.BuildPaths(seq, opts)
	}
	return view, nil
}

func (s *MapService) options(q models.MapQuery) spatial.PathOptions {
	opts := s.paths
	if q.LongitudeCutoff != nil {
		opts.LongitudeCutoff = *q.LongitudeCutoff
	}
	if q.Points > 0 {
		opts.Points = q.Points
	}
	if opts.Points < 2 {
		opts.Points = 2
	}
	return opts
}

// GeoJSON renders the view as a feature collection
func (s *MapService) GeoJSON(ctx context.Context, q models.MapQuery) (render.FeatureCollection, error) {
	view, err := s.View(ctx, q)
	if err != nil {
		return render.FeatureCollection{}, err
	}
	return render.GeoJSON(view.Markers, view.Segments), nil
}

// WriteHTML renders the view as a standalone Leaflet page
func (s *MapService) WriteHTML(ctx context.Context, w io.Writer, q models.MapQuery) error {
	view, err := s.View(ctx, q)
	if err != nil {
		return err
	}
	if err := render.WriteHTML(w, view.Title, s.style, view.Markers, view.Segments); err != nil {
		return fmt.Errorf("failed to render map page: %w", err)
	}
	return nil
}

// GPX renders the ordered sequence as a GPX document
func (s *MapService) GPX(ctx context.Context, q models.MapQuery) ([]byte, error) {
	view, err := s.View(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := render.MarshalGPX(render.GPX(view.Title, view.ordered))
	if err != nil {
		return nil, fmt.Errorf("failed to render gpx: %w", err)
	}
	return data, nil
}
