package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	"github.com/raidatlas/raidatlas-api/internal/service"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

type eventRepoStub struct {
	events map[string]models.Event
}

func (s *eventRepoStub) List(_ context.Context, _ models.EventFilter, _ time.Time) ([]models.Event, int, error) {
	out := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, event)
	}
	return out, len(out), nil
}

func (s *eventRepoStub) GetByID(_ context.Context, id string) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &event, nil
}

func (s *eventRepoStub) Create(_ context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = "event-new"
	}
	s.events[event.ID] = *event
	return nil
}

func (s *eventRepoStub) Update(_ context.Context, event *models.Event) error {
	s.events[event.ID] = *event
	return nil
}

func (s *eventRepoStub) Delete(_ context.Context, id string) error {
	delete(s.events, id)
	return nil
}

type cityRepoStub struct {
	cities []models.City
}

func (s *cityRepoStub) List(_ context.Context, _ models.CityFilter) ([]models.City, int, error) {
	return s.cities, len(s.cities), nil
}

func (s *cityRepoStub) ListByIDs(_ context.Context, ids []string) ([]models.City, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.City
	for _, city := range s.cities {
		if want[city.ID] {
			out = append(out, city)
		}
	}
	return out, nil
}

func (s *cityRepoStub) ListAll(_ context.Context) ([]models.City, error) {
	return s.cities, nil
}

func (s *cityRepoStub) GetByID(_ context.Context, id string) (*models.City, error) {
	for _, city := range s.cities {
		if city.ID == id {
			c := city
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *cityRepoStub) Create(_ context.Context, city *models.City) error {
	if city.ID == "" {
		city.ID = "city-new"
	}
	s.cities = append(s.cities, *city)
	return nil
}

func (s *cityRepoStub) Update(_ context.Context, _ *models.City) error { return nil }
func (s *cityRepoStub) Delete(_ context.Context, _ string) error       { return nil }

func newTimelineHandler() *TimelineHandler {
	events := &eventRepoStub{events: map[string]models.Event{
		"cd-july": {
			ID:        "cd-july",
			Name:      "Community Day",
			EventType: "COMMUNITY_DAY",
			StartTime: time.Date(2025, time.July, 15, 11, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, time.July, 15, 14, 0, 0, 0, time.UTC),
		},
	}}
	cities := &cityRepoStub{cities: []models.City{
		{ID: "tokyo", Name: "Tokyo", Timezone: "Asia/Tokyo"},
		{ID: "nyc", Name: "New York", Timezone: "America/New_York"},
	}}
	svc := service.NewTimelineService(events, cities, nil, nil, 0, nil)
	return NewTimelineHandler(svc)
}

func TestTimelineHandlerTimeline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events/cd-july/timeline?tz=Europe/Berlin", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "cd-july"}}

	handler.Timeline(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.TimelineResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Europe/Berlin", envelope.Data.Timezone)
	require.NotNil(t, envelope.Data.Timeline)
	require.Len(t, envelope.Data.Timeline.Items, 3)
	assert.Equal(t, "city", envelope.Data.Timeline.Items[0].Kind)
	assert.Equal(t, "gap", envelope.Data.Timeline.Items[1].Kind)
}

func TestTimelineHandlerCitySelection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events/cd-july/timeline?cities=tokyo", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "cd-july"}}

	handler.Timeline(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.TimelineResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Timeline)
	require.Len(t, envelope.Data.Timeline.Items, 1)
	assert.Equal(t, "Tokyo", envelope.Data.Timeline.Items[0].Entry.CityName)
}

func TestTimelineHandlerUnknownEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events/nope/timeline", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.Timeline(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestTimelineHandlerCityTimes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTimelineHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events/cd-july/times?tz=Asia/Tokyo", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "cd-july"}}

	handler.CityTimes(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.CityTimesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Cities, 2)
	for _, city := range envelope.Data.Cities {
		assert.Contains(t, city.DisplayRange, "11:00-14:00")
	}
}
