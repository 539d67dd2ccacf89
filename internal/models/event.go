package models

import "time"

// EventStatus is derived from the event window relative to now.
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "UPCOMING"
	EventStatusActive   EventStatus = "ACTIVE"
	EventStatusEnded    EventStatus = "ENDED"
)

// Event is one scheduled occurrence. IsGlobalTime true means StartTime and
// EndTime are absolute instants shared by every city; false means their
// UTC-read clock digits are the local kickoff time in each participating
// city.
type Event struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	EventType    string    `db:"event_type" json:"event_type"`
	StartTime    time.Time `db:"start_time" json:"start_time"`
	EndTime      time.Time `db:"end_time" json:"end_time"`
	IsGlobalTime bool      `db:"is_global_time" json:"is_global_time"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Status derives the lifecycle phase at the given instant. Local-time events
// use their nominal digits, which is good enough for list filtering.
func (e Event) Status(now time.Time) EventStatus {
	switch {
	case now.Before(e.StartTime):
		return EventStatusUpcoming
	case now.After(e.EndTime):
		return EventStatusEnded
	default:
		return EventStatusActive
	}
}

// EventFilter describes query params for listing events.
type EventFilter struct {
	EventType string
	Status    EventStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
