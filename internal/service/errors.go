package service

import "errors"

var (
	// ErrScanNotFound is returned when a scan job id is unknown
	ErrScanNotFound = errors.New("scan not found")
	// ErrMediaNotFound is returned when no record is stored for a path
	ErrMediaNotFound = errors.New("media record not found")
	// ErrNoFolders is returned when a scan names no folder
	ErrNoFolders = errors.New("at least one folder is required")
	// ErrUnknownMediaType is returned when a filter names a type other than picture, clip or other
	ErrUnknownMediaType = errors.New("unknown media type")
	// ErrInvalidRect is returned when a flip rectangle has south >= north or west >= east
	ErrInvalidRect = errors.New("invalid rectangle: south must be below north and west below east")
)
