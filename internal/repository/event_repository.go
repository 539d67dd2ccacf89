package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/raidatlas/raidatlas-api/internal/models"
)

// EventRepository persists scheduled events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, name, description, event_type, start_time, end_time, is_global_time, created_at, updated_at"

// List returns events matching the filter. The status filter compares the
// stored window against now; for local-time events the nominal digits are
// used, which is adequate for list views.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter, now time.Time) ([]models.Event, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EventType != "" {
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)+1))
		args = append(args, filter.EventType)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	switch filter.Status {
	case models.EventStatusUpcoming:
		where = append(where, fmt.Sprintf("start_time > $%d", len(args)+1))
		args = append(args, now)
	case models.EventStatusActive:
		where = append(where, fmt.Sprintf("start_time <= $%d AND end_time >= $%d", len(args)+1, len(args)+1))
		args = append(args, now)
	case models.EventStatusEnded:
		where = append(where, fmt.Sprintf("end_time < $%d", len(args)+1))
		args = append(args, now)
	}
	whereClause := strings.Join(where, " AND ")

	sortBy := "start_time"
	if filter.SortBy == "name" {
		sortBy = "name"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d",
		eventColumns, whereClause, sortBy, sortOrder, size, offset)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// GetByID fetches an event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO events (id, name, description, event_type, start_time, end_time, is_global_time, created_at, updated_at)
VALUES (:id, :name, :description, :event_type, :start_time, :end_time, :is_global_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET name = :name, description = :description, event_type = :event_type,
start_time = :start_time, end_time = :end_time, is_global_time = :is_global_time, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
