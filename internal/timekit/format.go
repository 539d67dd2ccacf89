package timekit

import (
	"fmt"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "Jan 2"
)

// ZoneAbbrev returns the zone abbreviation in effect at the given instant,
// falling back to the IANA identifier when the platform only has a numeric
// offset ("+07") or nothing at all for that zone.
func ZoneAbbrev(at time.Time, zone *time.Location) string {
	if zone == nil {
		return "UTC"
	}
	name, _ := at.In(zone).Zone()
	if name == "" || strings.HasPrefix(name, "+") || strings.HasPrefix(name, "-") {
		return zone.String()
	}
	return name
}

// FormatTime renders a single instant as a clock time in the given zone.
func FormatTime(t time.Time, zone *time.Location) string {
	if zone == nil {
		zone = time.UTC
	}
	return t.In(zone).Format(clockLayout)
}

// FormatRange renders "18:00-21:00 CEST", optionally prefixed with the start
// date ("Aug 24, 18:00-21:00 CEST"). Formatting the same instant twice always
// yields the same string; there is no shared formatter state.
func FormatRange(start, end time.Time, zone *time.Location, includeDate bool) string {
	if zone == nil {
		zone = time.UTC
	}
	s := start.In(zone)
	e := end.In(zone)
	rangePart := fmt.Sprintf("%s-%s %s", s.Format(clockLayout), e.Format(clockLayout), ZoneAbbrev(start, zone))
	if includeDate {
		return fmt.Sprintf("%s, %s", s.Format(dateLayout), rangePart)
	}
	return rangePart
}

// FormatEventRange renders an event window for a viewer zone.
//
// Global-time windows go through an ordinary conversion into zone. Local-time
// windows deliberately do not: their stored UTC-read digits ARE the local
// kickoff time in every city, so the digits are shown verbatim and the zone
// abbreviation is attached as a contextual label only. A "6pm local" event
// therefore reads 18:00 for every viewer, whatever zone labels it. This
// mirrors the product behaviour and must not be "fixed" into a true
// conversion.
func FormatEventRange(window EventWindow, zone *time.Location, includeDate bool) string {
	if zone == nil {
		zone = time.UTC
	}
	if window.GlobalTime {
		return FormatRange(window.Start, window.End, zone, includeDate)
	}
	s := window.Start.UTC()
	e := window.End.UTC()
	rangePart := fmt.Sprintf("%s-%s %s", s.Format(clockLayout), e.Format(clockLayout), ZoneAbbrev(window.Start, zone))
	if includeDate {
		return fmt.Sprintf("%s, %s", s.Format(dateLayout), rangePart)
	}
	return rangePart
}

// DifferenceDescription describes how far to's clock is from from's clock at
// the given instant, e.g. "7 hours ahead", "1 hour behind" or "same as yours".
func DifferenceDescription(from, to *time.Location, at time.Time) string {
	diff := OffsetDifferenceHours(from, to, at)
	switch {
	case diff == 0:
		return "same as yours"
	case diff > 0:
		return fmt.Sprintf("%s ahead", hourText(diff))
	default:
		return fmt.Sprintf("%s behind", hourText(-diff))
	}
}

func hourText(n int) string {
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}
