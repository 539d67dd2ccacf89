package models

import "time"

// Favorite marks an event as starred by a device.
type Favorite struct {
	DeviceID  string    `db:"device_id" json:"device_id"`
	EventID   string    `db:"event_id" json:"event_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
