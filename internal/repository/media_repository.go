package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jengzang/media-geotag-mapper/internal/database"
	"github.com/jengzang/media-geotag-mapper/internal/models"
)

const mediaColumns = `path, name, extension, media_type, size_bytes, modified_at, latitude, longitude,
	capture_instant, raw_location, longitude_flipped, scan_id`

// MediaRepository handles database operations for media records
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const upsertMedia = `INSERT INTO media_records (` + mediaColumns + `, capture_year)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		extension = excluded.extension,
		media_type = excluded.media_type,
		size_bytes = excluded.size_bytes,
		modified_at = excluded.modified_at,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		capture_instant = excluded.capture_instant,
		capture_year = excluded.capture_year,
		raw_location = excluded.raw_location,
		longitude_flipped = excluded.longitude_flipped,
		scan_id = excluded.scan_id,
		updated_at = CURRENT_TIMESTAMP`

// UpsertBatch inserts or replaces records keyed by path in one transaction
func (r *MediaRepository) UpsertBatch(ctx context.Context, records []models.MediaRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertMedia)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx, upsertArgs(rec)...); err != nil {
				return fmt.Errorf("failed to upsert media record %s: %w", rec.Path, err)
			}
		}
		return nil
	})
}

// Upsert inserts or replaces a single record
func (r *MediaRepository) Upsert(ctx context.Context, rec models.MediaRecord) error {
	if _, err := r.db.ExecContext(ctx, upsertMedia, upsertArgs(rec)...); err != nil {
		return fmt.Errorf("failed to upsert media record %s: %w", rec.Path, err)
	}
	return nil
}

func upsertArgs(rec models.MediaRecord) []interface{} {
	var instant, year sql.NullInt64
	if rec.CaptureInstant != nil {
		instant = sql.NullInt64{Int64: rec.CaptureInstant.UnixNano(), Valid: true}
		year = sql.NullInt64{Int64: int64(rec.CaptureInstant.UTC().Year()), Valid: true}
	}
	var scanID sql.NullString
	if rec.ScanID != "" {
		scanID = sql.NullString{String: rec.ScanID, Valid: true}
	}

	return []interface{}{
		rec.Path, rec.Name, rec.Extension, string(rec.MediaType), rec.SizeBytes,
		unixNano(rec.ModifiedAt), rec.Latitude, rec.Longitude, instant, rec.RawLocation,
		boolToInt(rec.LongitudeFlipped), scanID, year,
	}
}

// GetByPath retrieves a single record
func (r *MediaRepository) GetByPath(ctx context.Context, path string) (*models.MediaRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+mediaColumns+" FROM media_records WHERE path = ?", path)
	rec, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media record: %w", err)
	}
	return &rec, nil
}

// List retrieves media records with filtering and pagination
func (r *MediaRepository) List(ctx context.Context, filter models.MediaFilter) ([]models.MediaRecord, int64, error) {
	conditions, args := mediaConditions(filter.MediaType, filter.LocatedOnly, filter.Year, filter.Folder)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media records: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := "SELECT " + mediaColumns + " FROM media_records" + where + " ORDER BY path LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	records, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAll retrieves every record, optionally restricted to a folder prefix, ordered by path
func (r *MediaRepository) ListAll(ctx context.Context, folder string) ([]models.MediaRecord, error) {
	conditions, args := mediaConditions("", false, 0, folder)
	query := "SELECT " + mediaColumns + " FROM media_records"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return r.query(ctx, query+" ORDER BY path", args...)
}

// Sequence loads the located records matching q and orders them by the requested key.
// The year filter applies to the same instant the sequence is sorted by.
func (r *MediaRepository) Sequence(ctx context.Context, q models.SequenceQuery) (models.OrderedRecords, error) {
	key := models.ParseSortKey(q.SortBy)
	captureYear := q.Year
	orderCol := "capture_instant IS NULL, capture_instant"
	if key == models.SortByModified {
		captureYear = 0
		orderCol = "modified_at"
	}
	conditions, args := mediaConditions("", true, captureYear, q.Folder)

	query := "SELECT " + mediaColumns + " FROM media_records WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY " + orderCol + ", path"

	records, err := r.query(ctx, query, args...)
	if err != nil {
		return models.OrderedRecords{}, err
	}
	if key == models.SortByModified && q.Year > 0 {
		records = slices.DeleteFunc(records, func(rec models.MediaRecord) bool {
			return rec.ModifiedAt.UTC().Year() != q.Year
		})
	}
	return models.SortRecords(records, key), nil
}

// UpdateLongitudes writes corrected longitudes and marks the records as flipped
func (r *MediaRepository) UpdateLongitudes(ctx context.Context, records []models.MediaRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		for _, rec := range records {
			_, err := tx.ExecContext(ctx,
				`UPDATE media_records SET longitude = ?, longitude_flipped = 1, updated_at = CURRENT_TIMESTAMP
				WHERE path = ? AND longitude_flipped = 0`,
				rec.Longitude, rec.Path)
			if err != nil {
				return fmt.Errorf("failed to update longitude of %s: %w", rec.Path, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored and located records
func (r *MediaRepository) Count(ctx context.Context) (total, located int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN NOT (latitude = 0 AND longitude = 0) THEN 1 ELSE 0 END), 0)
		FROM media_records`).Scan(&total, &located)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count media records: %w", err)
	}
	return total, located, nil
}

func mediaConditions(mediaType string, locatedOnly bool, year int, folder string) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if mediaType != "" {
		conditions = append(conditions, "media_type = ?")
		args = append(args, mediaType)
	}
	if locatedOnly {
		conditions = append(conditions, "NOT (latitude = 0 AND longitude = 0)")
	}
	if year > 0 {
		conditions = append(conditions, "capture_year = ?")
		args = append(args, year)
	}
	if folder != "" {
		conditions = append(conditions, "substr(path, 1, ?) = ?")
		args = append(args, len(folder), folder)
	}

	return conditions, args
}

func (r *MediaRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.MediaRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media records: %w", err)
	}
	defer rows.Close()

	var records []models.MediaRecord
	for rows.Next() {
		rec, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media records: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMedia(s scanner) (models.MediaRecord, error) {
	var (
		rec       models.MediaRecord
		mediaType string
		modified  int64
		instant   sql.NullInt64
		flipped   int
		scanID    sql.NullString
	)

	err := s.Scan(
		&rec.Path, &rec.Name, &rec.Extension, &mediaType, &rec.SizeBytes, &modified,
		&rec.Latitude, &rec.Longitude, &instant, &rec.RawLocation, &flipped, &scanID,
	)
	if err != nil {
		return models.MediaRecord{}, err
	}

	rec.MediaType = models.ParseMediaType(mediaType)
	if modified != 0 {
		rec.ModifiedAt = time.Unix(0, modified).UTC()
	}
	if instant.Valid {
		t := time.Unix(0, instant.Int64).UTC()
		rec.CaptureInstant = &t
	}
	rec.LongitudeFlipped = flipped != 0
	rec.ScanID = scanID.String

	return rec, nil
}

// unixNano stores the zero time as 0
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
