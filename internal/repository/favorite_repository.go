package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/raidatlas/raidatlas-api/internal/models"
)

// FavoriteRepository persists device-scoped event favorites.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository constructs a favorite repository.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListEvents returns the favorited events for a device, newest star first.
func (r *FavoriteRepository) ListEvents(ctx context.Context, deviceID string) ([]models.Event, error) {
	const query = `SELECT e.id, e.name, e.description, e.event_type, e.start_time, e.end_time, e.is_global_time, e.created_at, e.updated_at
FROM favorites f JOIN events e ON e.id = f.event_id
WHERE f.device_id = $1 ORDER BY f.created_at DESC`
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, deviceID); err != nil {
		return nil, fmt.Errorf("list favorite events: %w", err)
	}
	return events, nil
}

// Add stars an event for a device; repeated stars are a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, deviceID, eventID string) error {
	const query = `INSERT INTO favorites (device_id, event_id, created_at)
VALUES ($1, $2, $3) ON CONFLICT (device_id, event_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, deviceID, eventID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove unstars an event. It reports whether a row was deleted.
func (r *FavoriteRepository) Remove(ctx context.Context, deviceID, eventID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM favorites WHERE device_id = $1 AND event_id = $2", deviceID, eventID)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite result: %w", err)
	}
	return affected > 0, nil
}
