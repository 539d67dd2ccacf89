// Package timekit implements the timezone arithmetic behind the multi-city
// event views: wall-clock reinterpretation, display formatting and the
// cross-city timeline builder. Everything in this package is pure; callers
// may invoke it concurrently without coordination.
package timekit

import "time"

// ResolveZone parses an IANA timezone identifier. It is the only place raw
// identifiers are turned into locations; code above this boundary decides how
// to degrade (the services fall back to UTC), code below it always receives a
// concrete *time.Location.
func ResolveZone(id string) (*time.Location, error) {
	return time.LoadLocation(id)
}

// ResolveZoneOrUTC resolves an identifier, falling back to UTC when the id is
// empty or unknown. Invalid zones are a recoverable input, not an error.
func ResolveZoneOrUTC(id string) *time.Location {
	if id == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ConvertWallClock reads t's wall-clock components in UTC and reinterprets
// them in from, producing the absolute instant at which a clock in from shows
// those digits. The result is anchored in to, so formatting it displays the
// converted local time for the viewer.
//
// Local-time events store their nominal clock digits as UTC components, which
// is why UTC is the reading zone. A wall-clock time that does not exist in
// from (spring-forward gap) or occurs twice (fall-back) resolves to whatever
// time.Date picks; that platform behaviour is accepted as-is.
//
// A nil zone returns t unchanged rather than failing.
func ConvertWallClock(t time.Time, from, to *time.Location) time.Time {
	if from == nil || to == nil {
		return t
	}
	u := t.UTC()
	reanchored := time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), from)
	return reanchored.In(to)
}

// OffsetDifferenceHours returns the whole-hour offset of b relative to a,
// truncated toward zero. The difference is evaluated at a specific instant
// because DST can change it depending on the calendar date.
func OffsetDifferenceHours(a, b *time.Location, at time.Time) int {
	if a == nil || b == nil {
		return 0
	}
	_, offA := at.In(a).Zone()
	_, offB := at.In(b).Zone()
	return (offB - offA) / 3600
}
