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

// CityRepository persists participating cities.
type CityRepository struct {
	db *sqlx.DB
}

// NewCityRepository constructs a city repository.
func NewCityRepository(db *sqlx.DB) *CityRepository {
	return &CityRepository{db: db}
}

// List returns cities matching the filter with a total count.
func (r *CityRepository) List(ctx context.Context, filter models.CityFilter) ([]models.City, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR timezone ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Country != "" {
		where = append(where, fmt.Sprintf("country = $%d", len(args)+1))
		args = append(args, filter.Country)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, name, country, timezone, created_at, updated_at
FROM cities WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`, whereClause, size, offset)
	var cities []models.City
	if err := r.db.SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cities: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM cities WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count cities: %w", err)
	}
	return cities, total, nil
}

// ListByIDs fetches the given cities preserving no particular order.
func (r *CityRepository) ListByIDs(ctx context.Context, ids []string) ([]models.City, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT id, name, country, timezone, created_at, updated_at FROM cities WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build city query: %w", err)
	}
	query = r.db.Rebind(query)
	var cities []models.City
	if err := r.db.SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, fmt.Errorf("list cities by ids: %w", err)
	}
	return cities, nil
}

// ListAll returns every city ordered by name.
func (r *CityRepository) ListAll(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	const query = "SELECT id, name, country, timezone, created_at, updated_at FROM cities ORDER BY name ASC"
	if err := r.db.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("list all cities: %w", err)
	}
	return cities, nil
}

// GetByID fetches a single city.
func (r *CityRepository) GetByID(ctx context.Context, id string) (*models.City, error) {
	const query = "SELECT id, name, country, timezone, created_at, updated_at FROM cities WHERE id = $1"
	var city models.City
	if err := r.db.GetContext(ctx, &city, query, id); err != nil {
		return nil, err
	}
	return &city, nil
}

// Create inserts a city.
func (r *CityRepository) Create(ctx context.Context, city *models.City) error {
	if city.ID == "" {
		city.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if city.CreatedAt.IsZero() {
		city.CreatedAt = now
	}
	city.UpdatedAt = now
	const query = `INSERT INTO cities (id, name, country, timezone, created_at, updated_at)
VALUES (:id, :name, :country, :timezone, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, city); err != nil {
		return fmt.Errorf("create city: %w", err)
	}
	return nil
}

// Update modifies a city.
func (r *CityRepository) Update(ctx context.Context, city *models.City) error {
	city.UpdatedAt = time.Now().UTC()
	const query = `UPDATE cities SET name = :name, country = :country, timezone = :timezone, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, city); err != nil {
		return fmt.Errorf("update city: %w", err)
	}
	return nil
}

// Delete removes a city.
func (r *CityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cities WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	return nil
}
