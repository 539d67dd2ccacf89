package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidatlas/raidatlas-api/internal/dto"
)

func TestDeviceServiceRegisterAndValidate(t *testing.T) {
	repo := &fakeDeviceRepo{}
	svc := NewDeviceService(repo, "test-secret", time.Hour, "raidatlas-test", nil)

	resp, err := svc.Register(context.Background(), dto.RegisterDeviceRequest{
		Platform: "ios",
		Timezone: "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, repo.created.ID, resp.DeviceID)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.DeviceID, claims.DeviceID)
	assert.Equal(t, "ios", claims.Platform)
	assert.Contains(t, repo.touched, resp.DeviceID)
}

func TestDeviceServiceRejectsForeignToken(t *testing.T) {
	issuer := NewDeviceService(&fakeDeviceRepo{}, "secret-a", time.Hour, "raidatlas-test", nil)
	verifier := NewDeviceService(&fakeDeviceRepo{}, "secret-b", time.Hour, "raidatlas-test", nil)

	resp, err := issuer.Register(context.Background(), dto.RegisterDeviceRequest{Platform: "android"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), resp.Token)
	require.Error(t, err)
}

func TestDeviceServiceRejectsGarbageToken(t *testing.T) {
	svc := NewDeviceService(&fakeDeviceRepo{}, "secret", time.Hour, "raidatlas-test", nil)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
}

func TestDeviceServiceRejectsExpiredToken(t *testing.T) {
	repo := &fakeDeviceRepo{}
	svc := NewDeviceService(repo, "secret", time.Hour, "raidatlas-test", nil)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.Register(context.Background(), dto.RegisterDeviceRequest{Platform: "web"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(context.Background(), resp.Token)
	require.Error(t, err)
}
