package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	"github.com/raidatlas/raidatlas-api/internal/timekit"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

// CityRepository abstracts city persistence.
type CityRepository interface {
	List(ctx context.Context, filter models.CityFilter) ([]models.City, int, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.City, error)
	ListAll(ctx context.Context) ([]models.City, error)
	GetByID(ctx context.Context, id string) (*models.City, error)
	Create(ctx context.Context, city *models.City) error
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id string) error
}

// CityService manages participating cities. Timezone identifiers are
// validated strictly on writes so that read paths can stay lenient.
type CityService struct {
	repo      CityRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCityService constructs a city service.
func NewCityService(repo CityRepository, cache *CacheService, logger *zap.Logger) *CityService {
	return &CityService{repo: repo, cache: cache, validator: validator.New(), logger: logger}
}

// List returns cities matching the filter.
func (s *CityService) List(ctx context.Context, filter models.CityFilter) ([]models.City, int, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches a single city.
func (s *CityService) Get(ctx context.Context, id string) (*models.City, error) {
	city, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "city not found")
		}
		return nil, err
	}
	return city, nil
}

// Create validates the payload and timezone identifier, then inserts the
// city.
func (s *CityService) Create(ctx context.Context, req dto.CityRequest) (*models.City, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid city payload")
	}
	if _, err := timekit.ResolveZone(req.Timezone); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnknownZone, "unknown timezone "+req.Timezone)
	}
	city := &models.City{Name: req.Name, Country: req.Country, Timezone: req.Timezone}
	if err := s.repo.Create(ctx, city); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return city, nil
}

// Update validates and applies the new city attributes.
func (s *CityService) Update(ctx context.Context, id string, req dto.CityRequest) (*models.City, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid city payload")
	}
	if _, err := timekit.ResolveZone(req.Timezone); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnknownZone, "unknown timezone "+req.Timezone)
	}
	city, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	city.Name = req.Name
	city.Country = req.Country
	city.Timezone = req.Timezone
	if err := s.repo.Update(ctx, city); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return city, nil
}

// Delete removes a city.
func (s *CityService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CityService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "timeline:*"); err != nil && s.logger != nil {
		s.logger.Warn("timeline cache invalidation failed", zap.Error(err))
	}
}
