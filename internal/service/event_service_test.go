package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

func TestEventServiceCreateRejectsDegenerateWindow(t *testing.T) {
	repo := &fakeEventRepo{events: map[string]models.Event{}}
	svc := NewEventService(repo, nil, nil)

	start := utcWall(2025, time.July, 15, 11, 0)
	_, err := svc.Create(context.Background(), dto.EventRequest{
		Name:      "Broken",
		EventType: "RAID_HOUR",
		StartTime: start,
		EndTime:   start,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestEventServiceCreate(t *testing.T) {
	repo := &fakeEventRepo{events: map[string]models.Event{}}
	svc := NewEventService(repo, nil, nil)

	event, err := svc.Create(context.Background(), dto.EventRequest{
		Name:      "Community Day",
		EventType: "COMMUNITY_DAY",
		StartTime: utcWall(2025, time.July, 15, 11, 0),
		EndTime:   utcWall(2025, time.July, 15, 14, 0),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	require.NotNil(t, repo.created)
	assert.False(t, repo.created.IsGlobalTime)
}

func TestEventServiceGetNotFound(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{events: map[string]models.Event{}}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestEventServiceListDerivesStatus(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeEventRepo{listed: []models.Event{
		{ID: "past", StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-2 * time.Hour)},
		{ID: "live", StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "next", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
	}}
	svc := NewEventService(repo, nil, nil)

	events, total, err := svc.List(context.Background(), models.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, models.EventStatusEnded, events[0].Status)
	assert.Equal(t, models.EventStatusActive, events[1].Status)
	assert.Equal(t, models.EventStatusUpcoming, events[2].Status)
}

func TestEventServiceUpdateAppliesFields(t *testing.T) {
	repo := &fakeEventRepo{events: map[string]models.Event{
		"event-1": {ID: "event-1", Name: "Old", StartTime: utcWall(2025, time.July, 1, 10, 0), EndTime: utcWall(2025, time.July, 1, 12, 0)},
	}}
	svc := NewEventService(repo, nil, nil)

	event, err := svc.Update(context.Background(), "event-1", dto.EventRequest{
		Name:         "New",
		EventType:    "GO_FEST",
		StartTime:    utcWall(2025, time.August, 1, 10, 0),
		EndTime:      utcWall(2025, time.August, 1, 18, 0),
		IsGlobalTime: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", event.Name)
	assert.True(t, event.IsGlobalTime)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "GO_FEST", repo.updated.EventType)
}
