package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

func TestCityServiceCreateValidatesTimezone(t *testing.T) {
	repo := &fakeCityRepo{}
	svc := NewCityService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.CityRequest{
		Name:     "Atlantis",
		Country:  "Nowhere",
		Timezone: "Atlantis/Deep",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnknownZone.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestCityServiceCreateRequiresName(t *testing.T) {
	repo := &fakeCityRepo{}
	svc := NewCityService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.CityRequest{Country: "Japan", Timezone: "Asia/Tokyo"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCityServiceCreate(t *testing.T) {
	repo := &fakeCityRepo{}
	svc := NewCityService(repo, nil, nil)

	city, err := svc.Create(context.Background(), dto.CityRequest{
		Name:     "Berlin",
		Country:  "Germany",
		Timezone: "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, city.ID)
	assert.Equal(t, "Europe/Berlin", city.Timezone)
}

func TestCityServiceUpdateValidatesTimezone(t *testing.T) {
	repo := &fakeCityRepo{cities: []models.City{
		{ID: "city-1", Name: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo"},
	}}
	svc := NewCityService(repo, nil, nil)

	_, err := svc.Update(context.Background(), "city-1", dto.CityRequest{
		Name:     "Tokyo",
		Country:  "Japan",
		Timezone: "Mars/Olympus",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnknownZone.Code, appErr.Code)
	assert.Nil(t, repo.updated)
}

func TestCityServiceUpdateUnknownCity(t *testing.T) {
	svc := NewCityService(&fakeCityRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), "missing", dto.CityRequest{
		Name:     "Berlin",
		Country:  "Germany",
		Timezone: "Europe/Berlin",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCityServiceDelete(t *testing.T) {
	repo := &fakeCityRepo{cities: []models.City{
		{ID: "city-1", Name: "Tokyo", Timezone: "Asia/Tokyo"},
	}}
	svc := NewCityService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "city-1"))
	assert.Equal(t, []string{"city-1"}, repo.deleted)
}
