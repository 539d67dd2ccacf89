package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	"github.com/raidatlas/raidatlas-api/internal/timekit"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

// paletteSize is the number of display colors clients cycle through for city
// blocks. Indices are derived from the city's timezone so the same zone keeps
// its color across screens.
const paletteSize = 8

// TimelineService builds the cross-city timeline and city-card views for an
// event. Results are cached per event, viewer zone and city selection.
type TimelineService struct {
	events   EventRepository
	cities   CityRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTimelineService constructs a timeline service.
func NewTimelineService(events EventRepository, cities CityRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		events:   events,
		cities:   cities,
		cache:    cache,
		metrics:  metrics,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Build assembles the ordered timeline for an event in the viewer's timezone.
// Unknown viewer zones fall back to UTC rather than failing; the resolved zone
// is echoed in the response. An event whose cities all yield degenerate
// windows produces a response with a null timeline, not an error.
func (s *TimelineService) Build(ctx context.Context, eventID, zoneID string, cityIDs []string) (*dto.TimelineResponse, error) {
	userZone := timekit.ResolveZoneOrUTC(zoneID)

	key := timelineCacheKey(eventID, userZone.String(), cityIDs)
	var cached dto.TimelineResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		s.metrics.RecordTimelineBuild("cached")
		return &cached, nil
	}

	event, err := s.fetchEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	cities, err := s.loadCities(ctx, cityIDs)
	if err != nil {
		return nil, err
	}

	window := timekit.EventWindow{Start: event.StartTime, End: event.EndTime, GlobalTime: event.IsGlobalTime}
	participants := make([]timekit.CityParticipant, 0, len(cities))
	zones := make(map[string]*time.Location, len(cities))
	for _, city := range cities {
		zone := timekit.ResolveZoneOrUTC(city.Timezone)
		zones[city.ID] = zone
		participants = append(participants, timekit.CityParticipant{ID: city.ID, Name: city.Name, Zone: zone})
	}

	resp := &dto.TimelineResponse{
		EventID:      event.ID,
		EventName:    event.Name,
		Timezone:     userZone.String(),
		IsGlobalTime: event.IsGlobalTime,
	}

	timeline := timekit.BuildTimeline(window, participants, userZone)
	if timeline == nil {
		s.metrics.RecordTimelineBuild("empty")
		s.storeTimeline(ctx, key, resp)
		return resp, nil
	}

	zoneOf := func(cityID string) *time.Location {
		if zone, ok := zones[cityID]; ok {
			return zone
		}
		return time.UTC
	}

	items := make([]dto.TimelineItem, 0, len(timeline.Items))
	for _, item := range timeline.Items {
		switch {
		case item.Entry != nil:
			entry := item.Entry
			cityZone := zoneOf(entry.CityID)
			items = append(items, dto.TimelineItem{
				Kind: "city",
				Entry: &dto.TimelineEntry{
					CityID:         entry.CityID,
					CityName:       entry.CityName,
					Start:          entry.Start,
					End:            entry.End,
					DisplayRange:   timekit.FormatRange(entry.Start, entry.End, userZone, true),
					TimeDifference: timekit.DifferenceDescription(userZone, cityZone, entry.Start),
					PaletteIndex:   timekit.PaletteIndex(cityZone.String(), paletteSize),
				},
			})
		case item.Gap != nil:
			gap := item.Gap
			items = append(items, dto.TimelineItem{
				Kind: "gap",
				Gap: &dto.TimelineGap{
					Start:          gap.Start,
					End:            gap.End,
					DurationSecs:   int64(gap.Duration() / time.Second),
					Classification: string(gap.Class()),
				},
			})
		}
	}

	resp.Timeline = &dto.Timeline{
		Items:             items,
		TotalStart:        timeline.TotalStart,
		TotalEnd:          timeline.TotalEnd,
		TotalDurationSecs: int64(timeline.TotalDuration / time.Second),
		PlayDurationSecs:  int64(timeline.PlayDuration / time.Second),
	}

	s.metrics.RecordTimelineBuild("computed")
	s.storeTimeline(ctx, key, resp)
	return resp, nil
}

// CityTimes returns the per-city formatted window for an event, the city-card
// view. Local-time events show the same verbatim digits for every city with
// the city's zone label attached.
func (s *TimelineService) CityTimes(ctx context.Context, eventID, zoneID string) (*dto.CityTimesResponse, error) {
	userZone := timekit.ResolveZoneOrUTC(zoneID)

	event, err := s.fetchEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	cities, err := s.cities.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	window := timekit.EventWindow{Start: event.StartTime, End: event.EndTime, GlobalTime: event.IsGlobalTime}
	out := make([]dto.CityTime, 0, len(cities))
	for _, city := range cities {
		cityZone := timekit.ResolveZoneOrUTC(city.Timezone)
		out = append(out, dto.CityTime{
			CityID:         city.ID,
			CityName:       city.Name,
			Timezone:       city.Timezone,
			DisplayRange:   timekit.FormatEventRange(window, cityZone, false),
			TimeDifference: timekit.DifferenceDescription(userZone, cityZone, window.Start),
			PaletteIndex:   timekit.PaletteIndex(cityZone.String(), paletteSize),
		})
	}

	return &dto.CityTimesResponse{
		EventID:      event.ID,
		EventName:    event.Name,
		Timezone:     userZone.String(),
		IsGlobalTime: event.IsGlobalTime,
		Cities:       out,
	}, nil
}

func (s *TimelineService) fetchEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	return event, nil
}

func (s *TimelineService) loadCities(ctx context.Context, cityIDs []string) ([]models.City, error) {
	if len(cityIDs) == 0 {
		return s.cities.ListAll(ctx)
	}
	return s.cities.ListByIDs(ctx, cityIDs)
}

func (s *TimelineService) storeTimeline(ctx context.Context, key string, resp *dto.TimelineResponse) {
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("timeline cache store failed", zap.String("key", key), zap.Error(err))
	}
}

func timelineCacheKey(eventID, zone string, cityIDs []string) string {
	if len(cityIDs) == 0 {
		return fmt.Sprintf("timeline:%s:%s:all", eventID, zone)
	}
	sorted := make([]string, len(cityIDs))
	copy(sorted, cityIDs)
	sort.Strings(sorted)
	return fmt.Sprintf("timeline:%s:%s:%s", eventID, zone, strings.Join(sorted, ","))
}
