package models

// MediaFilter represents filter parameters for querying media records
type MediaFilter struct {
	MediaType   string `form:"mediaType"`   // picture, clip, other
	LocatedOnly bool   `form:"locatedOnly"` // exclude the (0,0) sentinel
	Year        int    `form:"year"`        // capture year, 0 = any
	Folder      string `form:"folder"`      // path prefix
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// SequenceQuery selects the ordered located sequence used by map and stats endpoints
type SequenceQuery struct {
	SortBy string `form:"sortBy"` // capture, modified
	Year   int    `form:"year"`
	Folder string `form:"folder"`
}

// MapQuery adds path and styling options on top of SequenceQuery
type MapQuery struct {
	SequenceQuery
	Paths           *bool    `form:"paths"`
	LongitudeCutoff *float64 `form:"cutoff"`
	Points          int      `form:"points"`
	Title           string   `form:"title"`
}

// StatsQuery represents the parameters of the yearly travel report
type StatsQuery struct {
	SequenceQuery
	Unit string `form:"unit"` // miles, kilometers
}
