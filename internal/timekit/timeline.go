package timekit

import (
	"sort"
	"time"
)

// CooldownThreshold is the minimum recovery time between two consecutive city
// windows before the gap is flagged as a cooldown risk.
const CooldownThreshold = 2 * time.Hour

// EventWindow is one event occurrence. When GlobalTime is true, Start and End
// are absolute instants identical for every observer. When false, their
// UTC-read wall-clock components represent the local kickoff time in each
// participating city and must be reinterpreted per city.
type EventWindow struct {
	Start      time.Time
	End        time.Time
	GlobalTime bool
}

// Valid reports whether the window has positive duration.
func (w EventWindow) Valid() bool {
	return w.End.After(w.Start)
}

// CityParticipant is a city taking part in an event. Zone must be resolved
// before the timeline is built; ResolveZoneOrUTC handles unknown identifiers.
type CityParticipant struct {
	ID   string
	Name string
	Zone *time.Location
}

// CityTimeEntry is one city's participation window resolved into the viewer's
// timezone. Entries are recomputed on every build and never mutated.
type CityTimeEntry struct {
	CityID   string
	CityName string
	Start    time.Time
	End      time.Time
}

// Duration returns the length of the participation window.
func (e CityTimeEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// GapClass partitions the pause between two adjacent city windows.
type GapClass string

const (
	// GapOverlap marks adjacent windows that overlap or touch in reverse.
	GapOverlap GapClass = "overlap"
	// GapCooldownRisk marks a positive gap shorter than CooldownThreshold.
	GapCooldownRisk GapClass = "cooldown_risk"
	// GapNormal marks a gap of at least CooldownThreshold.
	GapNormal GapClass = "normal"
)

// TimeGap is the pause between the end of one city window and the start of
// the next. End before or equal to Start denotes an overlap, which is a
// reportable condition rather than an error.
type TimeGap struct {
	Start time.Time
	End   time.Time
}

// Duration may be negative for overlapping windows.
func (g TimeGap) Duration() time.Duration {
	return g.End.Sub(g.Start)
}

// Class derives the gap classification. The boundaries are exact: a gap of
// zero or less is an overlap, anything below CooldownThreshold is a cooldown
// risk and CooldownThreshold itself is already normal.
func (g TimeGap) Class() GapClass {
	d := g.Duration()
	switch {
	case d <= 0:
		return GapOverlap
	case d < CooldownThreshold:
		return GapCooldownRisk
	default:
		return GapNormal
	}
}

// TimelineItem is one element of the alternating entry/gap sequence. Exactly
// one of Entry and Gap is set.
type TimelineItem struct {
	Entry *CityTimeEntry
	Gap   *TimeGap
}

// Timeline is the chronologically ordered sequence of per-city windows and
// the gaps between them, in the viewer's timezone, for one event.
type Timeline struct {
	Items         []TimelineItem
	Entries       []CityTimeEntry
	TotalStart    time.Time
	TotalEnd      time.Time
	TotalDuration time.Duration
	PlayDuration  time.Duration
}

// BuildTimeline resolves the event window for every city into userZone and
// assembles the ordered, gap-annotated timeline. It returns nil when no city
// yields a usable window; it never returns an error or panics, since the
// consumers only distinguish "timeline" from "nothing to show".
func BuildTimeline(window EventWindow, cities []CityParticipant, userZone *time.Location) *Timeline {
	if len(cities) == 0 {
		return nil
	}
	if userZone == nil {
		userZone = time.UTC
	}

	entries := make([]CityTimeEntry, 0, len(cities))
	for _, city := range cities {
		var start, end time.Time
		if window.GlobalTime {
			start = window.Start.In(userZone)
			end = window.End.In(userZone)
		} else {
			zone := city.Zone
			if zone == nil {
				zone = time.UTC
			}
			start = ConvertWallClock(window.Start, zone, userZone)
			end = ConvertWallClock(window.End, zone, userZone)
		}
		if !end.After(start) {
			continue
		}
		entries = append(entries, CityTimeEntry{
			CityID:   city.ID,
			CityName: city.Name,
			Start:    start,
			End:      end,
		})
	}
	if len(entries) == 0 {
		return nil
	}

	// Stable keeps the caller's city order for identical start times.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})

	items := make([]TimelineItem, 0, 2*len(entries)-1)
	var playDuration time.Duration
	for i := range entries {
		if i > 0 {
			gap := &TimeGap{Start: entries[i-1].End, End: entries[i].Start}
			items = append(items, TimelineItem{Gap: gap})
		}
		items = append(items, TimelineItem{Entry: &entries[i]})
		playDuration += entries[i].Duration()
	}

	totalStart := entries[0].Start
	totalEnd := entries[len(entries)-1].End

	return &Timeline{
		Items:         items,
		Entries:       entries,
		TotalStart:    totalStart,
		TotalEnd:      totalEnd,
		TotalDuration: totalEnd.Sub(totalStart),
		PlayDuration:  playDuration,
	}
}
