// Package dto holds the response shapes the handlers serialize. They are
// derived fresh per request from the timekit value types.
package dto

import "time"

// TimelineEntry is one city's participation window in the viewer's timezone,
// decorated for display.
type TimelineEntry struct {
	CityID         string    `json:"city_id"`
	CityName       string    `json:"city_name"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DisplayRange   string    `json:"display_range"`
	TimeDifference string    `json:"time_difference"`
	PaletteIndex   int       `json:"palette_index"`
}

// TimelineGap is the pause between two adjacent city windows.
type TimelineGap struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DurationSecs   int64     `json:"duration_seconds"`
	Classification string    `json:"classification"`
}

// TimelineItem is one element of the alternating entry/gap sequence.
type TimelineItem struct {
	Kind  string         `json:"kind"` // "city" | "gap"
	Entry *TimelineEntry `json:"entry,omitempty"`
	Gap   *TimelineGap   `json:"gap,omitempty"`
}

// TimelineResponse carries the full cross-city timeline for one event. A null
// Timeline means no city yielded a usable window; that is a valid response,
// not an error.
type TimelineResponse struct {
	EventID      string    `json:"event_id"`
	EventName    string    `json:"event_name"`
	Timezone     string    `json:"timezone"`
	IsGlobalTime bool      `json:"is_global_time"`
	Timeline     *Timeline `json:"timeline"`
}

// Timeline groups the ordered items with the aggregate durations.
type Timeline struct {
	Items             []TimelineItem `json:"items"`
	TotalStart        time.Time      `json:"total_start"`
	TotalEnd          time.Time      `json:"total_end"`
	TotalDurationSecs int64          `json:"total_duration_seconds"`
	PlayDurationSecs  int64          `json:"play_duration_seconds"`
}

// CityTime is the city-card view: the formatted window for one city without
// the gap machinery.
type CityTime struct {
	CityID         string `json:"city_id"`
	CityName       string `json:"city_name"`
	Timezone       string `json:"timezone"`
	DisplayRange   string `json:"display_range"`
	TimeDifference string `json:"time_difference"`
	PaletteIndex   int    `json:"palette_index"`
}

// CityTimesResponse lists the per-city formatted windows for one event.
type CityTimesResponse struct {
	EventID      string     `json:"event_id"`
	EventName    string     `json:"event_name"`
	Timezone     string     `json:"timezone"`
	IsGlobalTime bool       `json:"is_global_time"`
	Cities       []CityTime `json:"cities"`
}
