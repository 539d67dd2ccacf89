package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/raidatlas/raidatlas-api/internal/models"
)

// DeviceRepository persists registered devices.
type DeviceRepository struct {
	db *sqlx.DB
}

// NewDeviceRepository constructs a device repository.
func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Create registers a new device.
func (r *DeviceRepository) Create(ctx context.Context, device *models.Device) error {
	if device.ID == "" {
		device.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	device.CreatedAt = now
	device.LastSeen = now
	const query = `INSERT INTO devices (id, platform, timezone, created_at, last_seen)
VALUES (:id, :platform, :timezone, :created_at, :last_seen)`
	if _, err := r.db.NamedExecContext(ctx, query, device); err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

// GetByID fetches a device.
func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*models.Device, error) {
	const query = "SELECT id, platform, timezone, created_at, last_seen FROM devices WHERE id = $1"
	var device models.Device
	if err := r.db.GetContext(ctx, &device, query, id); err != nil {
		return nil, err
	}
	return &device, nil
}

// TouchLastSeen records device activity.
func (r *DeviceRepository) TouchLastSeen(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE devices SET last_seen = $1 WHERE id = $2", ts, id); err != nil {
		return fmt.Errorf("touch device: %w", err)
	}
	return nil
}
