package models

import (
	"time"

	"github.com/lib/pq"
)

// ExportJobStatus tracks the async schedule sheet lifecycle.
type ExportJobStatus string

const (
	ExportStatusPending    ExportJobStatus = "PENDING"
	ExportStatusProcessing ExportJobStatus = "PROCESSING"
	ExportStatusCompleted  ExportJobStatus = "COMPLETED"
	ExportStatusFailed     ExportJobStatus = "FAILED"
)

// ExportJob is a queued schedule sheet rendering request.
type ExportJob struct {
	ID          string          `db:"id" json:"id"`
	EventID     string          `db:"event_id" json:"event_id"`
	Timezone    string          `db:"timezone" json:"timezone"`
	CityIDs     pq.StringArray  `db:"city_ids" json:"city_ids"`
	Status      ExportJobStatus `db:"status" json:"status"`
	FilePath    string          `db:"file_path" json:"-"`
	Error       *string         `db:"error" json:"error,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	CompletedAt *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
}
