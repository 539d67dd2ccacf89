package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/jobs"
	"github.com/raidatlas/raidatlas-api/pkg/storage"
	"go.uber.org/zap"
)

func newExportFixture(t *testing.T, enabled bool) (*fakeExportRepo, *ExportService) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSigner("test-secret", time.Hour)

	repo := newFakeExportRepo()
	events := &fakeEventRepo{events: map[string]models.Event{
		"event-1": {ID: "event-1", Name: "Community Day"},
	}}
	builder := &fakeTimelineBuilder{resp: &dto.TimelineResponse{
		EventID:   "event-1",
		EventName: "Community Day",
		Timezone:  "Europe/Berlin",
		Timeline: &dto.Timeline{Items: []dto.TimelineItem{
			{Kind: "city", Entry: &dto.TimelineEntry{CityName: "Tokyo", DisplayRange: "Jul 15, 04:00-07:00 CEST", TimeDifference: "7 hours ahead"}},
			{Kind: "gap", Gap: &dto.TimelineGap{DurationSecs: 36000, Classification: "normal"}},
			{Kind: "city", Entry: &dto.TimelineEntry{CityName: "New York", DisplayRange: "Jul 15, 17:00-20:00 CEST", TimeDifference: "6 hours behind"}},
		}},
	}}

	svc := NewExportService(repo, events, builder, store, signer, zap.NewNop(), enabled, "/api/v1/exports/download")
	return repo, svc
}

func TestExportServiceDisabled(t *testing.T) {
	_, svc := newExportFixture(t, false)

	_, err := svc.Enqueue(context.Background(), "event-1", dto.ExportRequest{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDisabled.Code, appErr.Code)
}

func TestExportServiceEnqueueUnknownEvent(t *testing.T) {
	_, svc := newExportFixture(t, true)
	queue := jobs.NewQueue("exports-test", svc.Process, jobs.QueueConfig{})
	queue.Start(context.Background())
	defer queue.Stop()
	svc.SetQueue(queue)

	_, err := svc.Enqueue(context.Background(), "missing", dto.ExportRequest{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestExportServiceProcessRendersSheet(t *testing.T) {
	repo, svc := newExportFixture(t, true)
	ctx := context.Background()

	job := &models.ExportJob{ID: "job-1", EventID: "event-1", Timezone: "Europe/Berlin", Status: models.ExportStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, job))

	require.NoError(t, svc.Process(ctx, jobs.Job{ID: "job-1", Type: "schedule_sheet"}))

	stored, err := repo.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusCompleted, stored.Status)
	assert.NotEmpty(t, stored.FilePath)
	require.NotNil(t, stored.CompletedAt)

	status, err := svc.Status(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.ExportStatusCompleted), status.Status)
	assert.Contains(t, status.DownloadURL, "/api/v1/exports/download?token=")
}

func TestExportServiceResolveRoundTrip(t *testing.T) {
	repo, svc := newExportFixture(t, true)
	ctx := context.Background()

	job := &models.ExportJob{ID: "job-2", EventID: "event-1", Status: models.ExportStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, job))
	require.NoError(t, svc.Process(ctx, jobs.Job{ID: "job-2"}))

	status, err := svc.Status(ctx, "job-2")
	require.NoError(t, err)
	token := status.DownloadURL[len("/api/v1/exports/download?token="):]

	file, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	// PDF magic bytes.
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportServiceResolveRejectsBadToken(t *testing.T) {
	_, svc := newExportFixture(t, true)

	_, err := svc.Resolve(context.Background(), "bogus.token.value.here")
	require.Error(t, err)
}

func TestExportServiceProcessFailureMarksJob(t *testing.T) {
	repo, svc := newExportFixture(t, true)
	svc.timelines = &fakeTimelineBuilder{err: errors.New("boom")}
	ctx := context.Background()

	job := &models.ExportJob{ID: "job-3", EventID: "event-1", Status: models.ExportStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, job))

	require.Error(t, svc.Process(ctx, jobs.Job{ID: "job-3"}))
	stored, err := repo.GetByID(ctx, "job-3")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFailed, stored.Status)
	require.NotNil(t, stored.Error)
	assert.Equal(t, "boom", *stored.Error)
}
