package dto

import (
	"time"

	"github.com/raidatlas/raidatlas-api/internal/models"
)

// EventRequest is the payload for creating or updating an event. For
// local-time events the window carries nominal wall-clock digits encoded as
// UTC components.
type EventRequest struct {
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	Description  string    `json:"description"`
	EventType    string    `json:"event_type" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
	IsGlobalTime bool      `json:"is_global_time"`
}

// EventResponse decorates a stored event with its derived status.
type EventResponse struct {
	models.Event
	Status models.EventStatus `json:"status"`
}

// NewEventResponse derives the response for one event at the given instant.
func NewEventResponse(event models.Event, now time.Time) EventResponse {
	return EventResponse{Event: event, Status: event.Status(now)}
}
