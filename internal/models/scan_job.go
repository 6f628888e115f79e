package models

// ScanStatus is the lifecycle state of a scan job
type ScanStatus string

const (
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusCancelled ScanStatus = "cancelled"
)

// ScanJob records one folder scan and its outcome ("N of M records located")
type ScanJob struct {
	ID          string     `json:"id" db:"id"`
	Folders     []string   `json:"folders" db:"folders_json"`
	Status      ScanStatus `json:"status" db:"status"`
	StartedAt   int64      `json:"startedAt" db:"started_at"`
	CompletedAt *int64     `json:"completedAt,omitempty" db:"completed_at"`
	Total       int        `json:"total" db:"total"`
	Pictures    int        `json:"pictures" db:"pictures"`
	Clips       int        `json:"clips" db:"clips"`
	Located     int        `json:"located" db:"located"`
	Skipped     int        `json:"skipped" db:"skipped"`
	LastError   *string    `json:"lastError,omitempty" db:"last_error"`
}

// ScanRequest is the input of a folder scan
type ScanRequest struct {
	Folders        []string `json:"folders" binding:"required,min=1"`
	FilesPerFolder int      `json:"filesPerFolder"` // 0 imports every file
}
