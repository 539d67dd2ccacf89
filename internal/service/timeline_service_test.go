package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

func newTimelineFixture() (*fakeEventRepo, *fakeCityRepo, *TimelineService) {
	events := &fakeEventRepo{events: map[string]models.Event{
		"cd-july": {
			ID:        "cd-july",
			Name:      "Community Day",
			EventType: "COMMUNITY_DAY",
			// Local kickoff 11:00-14:00, stored as UTC digits.
			StartTime:    utcWall(2025, time.July, 15, 11, 0),
			EndTime:      utcWall(2025, time.July, 15, 14, 0),
			IsGlobalTime: false,
		},
		"raid-global": {
			ID:           "raid-global",
			Name:         "Elite Raid",
			EventType:    "RAID_HOUR",
			StartTime:    utcWall(2025, time.July, 15, 9, 0),
			EndTime:      utcWall(2025, time.July, 15, 10, 0),
			IsGlobalTime: true,
		},
	}}
	cities := &fakeCityRepo{cities: []models.City{
		{ID: "tokyo", Name: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo"},
		{ID: "nyc", Name: "New York", Country: "USA", Timezone: "America/New_York"},
	}}
	svc := NewTimelineService(events, cities, nil, nil, 0, nil)
	return events, cities, svc
}

func TestTimelineBuildLocalEvent(t *testing.T) {
	_, _, svc := newTimelineFixture()

	resp, err := svc.Build(context.Background(), "cd-july", "Europe/Berlin", nil)
	require.NoError(t, err)
	assert.Equal(t, "cd-july", resp.EventID)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	assert.False(t, resp.IsGlobalTime)
	require.NotNil(t, resp.Timeline)

	// Tokyo 11:00 JST is 04:00 in Berlin; New York 11:00 EDT is 17:00.
	require.Len(t, resp.Timeline.Items, 3)
	assert.Equal(t, "city", resp.Timeline.Items[0].Kind)
	assert.Equal(t, "Tokyo", resp.Timeline.Items[0].Entry.CityName)
	assert.Equal(t, "gap", resp.Timeline.Items[1].Kind)
	assert.Equal(t, "city", resp.Timeline.Items[2].Kind)
	assert.Equal(t, "New York", resp.Timeline.Items[2].Entry.CityName)

	gap := resp.Timeline.Items[1].Gap
	assert.Equal(t, int64(10*3600), gap.DurationSecs)
	assert.Equal(t, "normal", gap.Classification)

	assert.Equal(t, int64(6*3600), resp.Timeline.PlayDurationSecs)
	assert.NotEmpty(t, resp.Timeline.Items[0].Entry.DisplayRange)
	assert.Equal(t, "7 hours ahead", resp.Timeline.Items[0].Entry.TimeDifference)
}

func TestTimelineBuildGlobalEventSharesInstant(t *testing.T) {
	_, _, svc := newTimelineFixture()

	resp, err := svc.Build(context.Background(), "raid-global", "Asia/Tokyo", nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Timeline)
	assert.True(t, resp.IsGlobalTime)

	var entries int
	var lastStart time.Time
	for _, item := range resp.Timeline.Items {
		if item.Kind != "city" {
			continue
		}
		entries++
		if !lastStart.IsZero() {
			assert.True(t, item.Entry.Start.Equal(lastStart))
		}
		lastStart = item.Entry.Start
	}
	assert.Equal(t, 2, entries)
	// Both cities start at the same instant, so the whole window is overlap.
	assert.Equal(t, int64(3600), resp.Timeline.TotalDurationSecs)
	assert.Equal(t, int64(2*3600), resp.Timeline.PlayDurationSecs)
}

func TestTimelineBuildUnknownViewerZoneFallsBackToUTC(t *testing.T) {
	_, _, svc := newTimelineFixture()

	resp, err := svc.Build(context.Background(), "cd-july", "Mars/Olympus", nil)
	require.NoError(t, err)
	assert.Equal(t, "UTC", resp.Timezone)
	require.NotNil(t, resp.Timeline)
}

func TestTimelineBuildCitySelection(t *testing.T) {
	_, _, svc := newTimelineFixture()

	resp, err := svc.Build(context.Background(), "cd-july", "UTC", []string{"tokyo"})
	require.NoError(t, err)
	require.NotNil(t, resp.Timeline)
	require.Len(t, resp.Timeline.Items, 1)
	assert.Equal(t, "Tokyo", resp.Timeline.Items[0].Entry.CityName)
}

func TestTimelineBuildUnknownEvent(t *testing.T) {
	_, _, svc := newTimelineFixture()

	_, err := svc.Build(context.Background(), "nope", "UTC", nil)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTimelineBuildNoCitiesYieldsNullTimeline(t *testing.T) {
	events, _, _ := newTimelineFixture()
	svc := NewTimelineService(events, &fakeCityRepo{}, nil, nil, 0, nil)

	resp, err := svc.Build(context.Background(), "cd-july", "UTC", nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Timeline)
	assert.Equal(t, "cd-july", resp.EventID)
}

func TestCityTimesLocalEventKeepsDigits(t *testing.T) {
	_, _, svc := newTimelineFixture()

	resp, err := svc.CityTimes(context.Background(), "cd-july", "Europe/Berlin")
	require.NoError(t, err)
	require.Len(t, resp.Cities, 2)
	for _, city := range resp.Cities {
		// Local-time events show the stored digits for every city.
		assert.Contains(t, city.DisplayRange, "11:00-14:00")
	}
	assert.Equal(t, "7 hours ahead", resp.Cities[0].TimeDifference)  // Tokyo
	assert.Equal(t, "6 hours behind", resp.Cities[1].TimeDifference) // New York
}

func TestCityTimesPaletteStable(t *testing.T) {
	_, _, svc := newTimelineFixture()

	first, err := svc.CityTimes(context.Background(), "cd-july", "UTC")
	require.NoError(t, err)
	second, err := svc.CityTimes(context.Background(), "cd-july", "UTC")
	require.NoError(t, err)
	for i := range first.Cities {
		assert.Equal(t, first.Cities[i].PaletteIndex, second.Cities[i].PaletteIndex)
		assert.GreaterOrEqual(t, first.Cities[i].PaletteIndex, 0)
		assert.Less(t, first.Cities[i].PaletteIndex, paletteSize)
	}
}
