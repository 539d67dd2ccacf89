package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/raidatlas/raidatlas-api/internal/dto"
	"github.com/raidatlas/raidatlas-api/internal/models"
	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
)

// DeviceRepository abstracts device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *models.Device) error
	GetByID(ctx context.Context, id string) (*models.Device, error)
	TouchLastSeen(ctx context.Context, id string, ts time.Time) error
}

// DeviceService registers anonymous devices and issues their tokens. There
// are no user accounts; the token only scopes favorites to a device.
type DeviceService struct {
	repo       DeviceRepository
	secret     []byte
	expiration time.Duration
	issuer     string
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewDeviceService constructs a device service.
func NewDeviceService(repo DeviceRepository, secret string, expiration time.Duration, issuer string, logger *zap.Logger) *DeviceService {
	return &DeviceService{
		repo:       repo,
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		validator:  validator.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates a device record and issues its signed token.
func (s *DeviceService) Register(ctx context.Context, req dto.RegisterDeviceRequest) (*dto.DeviceTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid device payload")
	}
	device := &models.Device{Platform: req.Platform, Timezone: req.Timezone}
	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.expiration)
	claims := models.DeviceClaims{
		DeviceID: device.ID,
		Platform: device.Platform,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   device.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign device token: %w", err)
	}

	return &dto.DeviceTokenResponse{DeviceID: device.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies a device token, returning its claims.
func (s *DeviceService) ValidateToken(ctx context.Context, raw string) (*models.DeviceClaims, error) {
	claims := &models.DeviceClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !token.Valid || claims.DeviceID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid device token")
	}

	// Activity tracking is best effort; a failed touch never blocks the
	// request.
	if err := s.repo.TouchLastSeen(ctx, claims.DeviceID, s.now().UTC()); err != nil && s.logger != nil {
		s.logger.Debug("touch last seen failed", zap.String("device_id", claims.DeviceID), zap.Error(err))
	}
	return claims, nil
}
