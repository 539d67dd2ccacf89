package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

// FavoriteRepository abstracts device-scoped favorite persistence.
type FavoriteRepository interface {
	ListEvents(ctx context.Context, deviceID string) ([]models.Event, error)
	Add(ctx context.Context, deviceID, eventID string) error
	Remove(ctx context.Context, deviceID, eventID string) (bool, error)
}

// FavoriteService manages the events a device has starred.
type FavoriteService struct {
	favorites FavoriteRepository
	events    EventRepository
	now       func() time.Time
}

// NewFavoriteService constructs a favorite service.
func NewFavoriteService(favorites FavoriteRepository, events EventRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, events: events, now: time.Now}
}

// List returns the device's starred events, newest star first.
func (s *FavoriteService) List(ctx context.Context, deviceID string) ([]dto.EventResponse, error) {
	events, err := s.favorites.ListEvents(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.NewEventResponse(event, now))
	}
	return out, nil
}

// Add stars an event for the device. Starring an already starred event is a
// no-op.
func (s *FavoriteService) Add(ctx context.Context, deviceID, eventID string) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return err
	}
	return s.favorites.Add(ctx, deviceID, eventID)
}

// Remove unstars an event for the device.
func (s *FavoriteService) Remove(ctx context.Context, deviceID, eventID string) error {
	removed, err := s.favorites.Remove(ctx, deviceID, eventID)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "favorite not found")
	}
	return nil
}
