package dto

import "time"

// ExportRequest asks for a printable schedule sheet of one event.
type ExportRequest struct {
	Timezone string   `json:"timezone"`
	CityIDs  []string `json:"city_ids"`
}

// ExportJobResponse reports the state of an export job. DownloadURL is only
// set once the job has completed.
type ExportJobResponse struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Status      string     `json:"status"`
	DownloadURL string     `json:"download_url,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
