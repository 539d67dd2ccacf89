package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
)

type fakeEventRepo struct {
	events  map[string]models.Event
	listed  []models.Event
	created *models.Event
	updated *models.Event
	deleted []string
}

func (f *fakeEventRepo) List(_ context.Context, _ models.EventFilter, _ time.Time) ([]models.Event, int, error) {
	return f.listed, len(f.listed), nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &event, nil
}

func (f *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = "event-new"
	}
	f.created = event
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	f.updated = event
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCityRepo struct {
	cities  []models.City
	created *models.City
	updated *models.City
	deleted []string
}

func (f *fakeCityRepo) List(_ context.Context, _ models.CityFilter) ([]models.City, int, error) {
	return f.cities, len(f.cities), nil
}

func (f *fakeCityRepo) ListByIDs(_ context.Context, ids []string) ([]models.City, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.City
	for _, city := range f.cities {
		if want[city.ID] {
			out = append(out, city)
		}
	}
	return out, nil
}

func (f *fakeCityRepo) ListAll(_ context.Context) ([]models.City, error) {
	return f.cities, nil
}

func (f *fakeCityRepo) GetByID(_ context.Context, id string) (*models.City, error) {
	for _, city := range f.cities {
		if city.ID == id {
			c := city
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCityRepo) Create(_ context.Context, city *models.City) error {
	if city.ID == "" {
		city.ID = "city-new"
	}
	f.created = city
	return nil
}

func (f *fakeCityRepo) Update(_ context.Context, city *models.City) error {
	f.updated = city
	return nil
}

func (f *fakeCityRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeFavoriteRepo struct {
	events  []models.Event
	added   [][2]string
	removed bool
}

func (f *fakeFavoriteRepo) ListEvents(_ context.Context, _ string) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeFavoriteRepo) Add(_ context.Context, deviceID, eventID string) error {
	f.added = append(f.added, [2]string{deviceID, eventID})
	return nil
}

func (f *fakeFavoriteRepo) Remove(_ context.Context, _, _ string) (bool, error) {
	return f.removed, nil
}

type fakeDeviceRepo struct {
	created *models.Device
	touched []string
}

func (f *fakeDeviceRepo) Create(_ context.Context, device *models.Device) error {
	if device.ID == "" {
		device.ID = "device-1"
	}
	f.created = device
	return nil
}

func (f *fakeDeviceRepo) GetByID(_ context.Context, id string) (*models.Device, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeDeviceRepo) TouchLastSeen(_ context.Context, id string, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeExportRepo struct {
	jobs map[string]*models.ExportJob
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{jobs: map[string]*models.ExportJob{}}
}

func (f *fakeExportRepo) Create(_ context.Context, job *models.ExportJob) error {
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeExportRepo) GetByID(_ context.Context, id string) (*models.ExportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *job
	return &clone, nil
}

func (f *fakeExportRepo) MarkProcessing(_ context.Context, id string) error {
	f.jobs[id].Status = models.ExportStatusProcessing
	return nil
}

func (f *fakeExportRepo) MarkCompleted(_ context.Context, id, filePath string, completedAt time.Time) error {
	job := f.jobs[id]
	job.Status = models.ExportStatusCompleted
	job.FilePath = filePath
	job.CompletedAt = &completedAt
	return nil
}

func (f *fakeExportRepo) MarkFailed(_ context.Context, id, reason string, completedAt time.Time) error {
	job := f.jobs[id]
	job.Status = models.ExportStatusFailed
	job.Error = &reason
	job.CompletedAt = &completedAt
	return nil
}

type fakeTimelineBuilder struct {
	resp *dto.TimelineResponse
	err  error
}

func (f *fakeTimelineBuilder) Build(_ context.Context, _, _ string, _ []string) (*dto.TimelineResponse, error) {
	return f.resp, f.err
}

func utcWall(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
