package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

// EventRepository abstracts event persistence.
type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter, now time.Time) ([]models.Event, int, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// EventService manages the event schedule.
type EventService struct {
	repo      EventRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs an event service.
func NewEventService(repo EventRepository, cache *CacheService, logger *zap.Logger) *EventService {
	return &EventService{repo: repo, cache: cache, validator: validator.New(), logger: logger, now: time.Now}
}

// List returns events with derived statuses.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]dto.EventResponse, int, error) {
	now := s.now().UTC()
	events, total, err := s.repo.List(ctx, filter, now)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.NewEventResponse(event, now))
	}
	return out, total, nil
}

// Get fetches a single event with its derived status.
func (s *EventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEventResponse(*event, s.now().UTC())
	return &resp, nil
}

// Create validates the window and inserts the event. Windows that do not end
// strictly after they start are rejected outright; a stored degenerate window
// would be silently dropped from every timeline.
func (s *EventService) Create(ctx context.Context, req dto.EventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	event := &models.Event{
		Name:         req.Name,
		Description:  req.Description,
		EventType:    req.EventType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsGlobalTime: req.IsGlobalTime,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.invalidate(ctx, event.ID)
	return event, nil
}

// Update validates and applies new event attributes.
func (s *EventService) Update(ctx context.Context, id string, req dto.EventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	event, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Name = req.Name
	event.Description = req.Description
	event.EventType = req.EventType
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.IsGlobalTime = req.IsGlobalTime
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *EventService) fetch(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "timeline:"+eventID+":*"); err != nil && s.logger != nil {
		s.logger.Warn("timeline cache invalidation failed", zap.String("event_id", eventID), zap.Error(err))
	}
}

func validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return nil
}
