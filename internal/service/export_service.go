package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/export"
	"github.com/raidatlas/raidatlas-api/pkg/jobs"
	"github.com/raidatlas/raidatlas-api/pkg/storage"
)

// ExportRepository abstracts export job persistence.
type ExportRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id, filePath string, completedAt time.Time) error
	MarkFailed(ctx context.Context, id, reason string, completedAt time.Time) error
}

// timelineBuilder is the slice of TimelineService the export worker needs.
type timelineBuilder interface {
	Build(ctx context.Context, eventID, zoneID string, cityIDs []string) (*dto.TimelineResponse, error)
}

// ExportService produces printable schedule sheets asynchronously. Requests
// are persisted as jobs, rendered by a worker pool and served through signed
// download URLs.
type ExportService struct {
	repo      ExportRepository
	events    EventRepository
	timelines timelineBuilder
	store     *storage.FileStore
	signer    *storage.Signer
	renderer  *export.PDFRenderer
	queue     *jobs.Queue
	logger    *zap.Logger
	enabled   bool
	urlPrefix string
	now       func() time.Time
}

// NewExportService constructs an export service. Attach the worker queue with
// SetQueue before accepting requests.
func NewExportService(repo ExportRepository, events EventRepository, timelines timelineBuilder, store *storage.FileStore, signer *storage.Signer, logger *zap.Logger, enabled bool, urlPrefix string) *ExportService {
	return &ExportService{
		repo:      repo,
		events:    events,
		timelines: timelines,
		store:     store,
		signer:    signer,
		renderer:  export.NewPDFRenderer(),
		logger:    logger,
		enabled:   enabled,
		urlPrefix: urlPrefix,
		now:       time.Now,
	}
}

// SetQueue wires the worker queue that will invoke Process.
func (s *ExportService) SetQueue(q *jobs.Queue) {
	s.queue = q
}

// Enqueue records a schedule sheet request and hands it to the workers.
func (s *ExportService) Enqueue(ctx context.Context, eventID string, req dto.ExportRequest) (*dto.ExportJobResponse, error) {
	if !s.enabled || s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrDisabled, "exports are disabled")
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Timezone:  req.Timezone,
		CityIDs:   req.CityIDs,
		Status:    models.ExportStatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "schedule_sheet"}); err != nil {
		reason := "could not queue export"
		_ = s.repo.MarkFailed(ctx, job.ID, reason, s.now().UTC())
		return nil, fmt.Errorf("enqueue export: %w", err)
	}
	return s.toResponse(job), nil
}

// Status reports a job's state, including a signed download URL once the
// sheet is ready.
func (s *ExportService) Status(ctx context.Context, jobID string) (*dto.ExportJobResponse, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, err
	}
	return s.toResponse(job), nil
}

// Process renders the sheet for one queued job. It is the jobs.Handler for
// the export queue.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	record, err := s.repo.GetByID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", job.ID, err)
	}
	if record.Status == models.ExportStatusCompleted {
		return nil
	}
	if err := s.repo.MarkProcessing(ctx, record.ID); err != nil {
		return err
	}

	timeline, err := s.timelines.Build(ctx, record.EventID, record.Timezone, record.CityIDs)
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}
	data, err := s.renderer.Render(buildSheet(timeline, s.now().UTC()))
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}
	relPath, err := s.store.Save(fmt.Sprintf("sheets/%s.pdf", record.ID), data)
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}
	if err := s.repo.MarkCompleted(ctx, record.ID, relPath, s.now().UTC()); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("schedule sheet rendered", zap.String("job_id", record.ID), zap.String("event_id", record.EventID))
	}
	return nil
}

// Resolve validates a download token and opens the referenced sheet.
func (s *ExportService) Resolve(ctx context.Context, token string) (*os.File, error) {
	jobID, relPath, _, err := s.signer.Verify(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != models.ExportStatusCompleted || job.FilePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file missing")
	}
	return file, nil
}

// Sweep deletes sheets older than ttl. Called periodically from main.
func (s *ExportService) Sweep(ttl time.Duration) {
	deleted, err := s.store.Sweep(ttl)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("export sweep failed", zap.Error(err))
		}
		return
	}
	if len(deleted) > 0 && s.logger != nil {
		s.logger.Info("swept expired sheets", zap.Int("count", len(deleted)))
	}
}

func (s *ExportService) fail(ctx context.Context, jobID string, cause error) error {
	if err := s.repo.MarkFailed(ctx, jobID, cause.Error(), s.now().UTC()); err != nil && s.logger != nil {
		s.logger.Warn("mark export failed", zap.String("job_id", jobID), zap.Error(err))
	}
	return cause
}

func (s *ExportService) toResponse(job *models.ExportJob) *dto.ExportJobResponse {
	resp := &dto.ExportJobResponse{
		ID:          job.ID,
		EventID:     job.EventID,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	}
	if job.Error != nil {
		resp.Error = *job.Error
	}
	if job.Status == models.ExportStatusCompleted && job.FilePath != "" {
		token, _, err := s.signer.Sign(job.ID, job.FilePath)
		if err == nil {
			resp.DownloadURL = fmt.Sprintf("%s?token=%s", s.urlPrefix, token)
		} else if s.logger != nil {
			s.logger.Warn("sign download url", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	return resp
}

func buildSheet(timeline *dto.TimelineResponse, generatedAt time.Time) export.Sheet {
	sheet := export.Sheet{
		Title: timeline.EventName,
		Meta: []string{
			fmt.Sprintf("Times shown in %s", timeline.Timezone),
			fmt.Sprintf("Generated %s", generatedAt.Format("Jan 2 2006 15:04 MST")),
		},
		Headers: []string{"City", "Window", "Time difference"},
	}
	if timeline.Timeline == nil {
		sheet.Rows = []export.SheetRow{{Columns: []string{"No city windows to display", "", ""}}}
		return sheet
	}
	for _, item := range timeline.Timeline.Items {
		switch item.Kind {
		case "city":
			sheet.Rows = append(sheet.Rows, export.SheetRow{
				Columns: []string{item.Entry.CityName, item.Entry.DisplayRange, item.Entry.TimeDifference},
			})
		case "gap":
			gapText := (time.Duration(item.Gap.DurationSecs) * time.Second).String()
			sheet.Rows = append(sheet.Rows, export.SheetRow{
				Columns:   []string{"Gap", gapText, item.Gap.Classification},
				Highlight: true,
			})
		}
	}
	return sheet
}
