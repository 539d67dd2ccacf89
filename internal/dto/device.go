package dto

import "time"

// RegisterDeviceRequest is the payload for registering an anonymous device.
type RegisterDeviceRequest struct {
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
	Timezone string `json:"timezone"`
}

// DeviceTokenResponse carries the issued device token.
type DeviceTokenResponse struct {
	DeviceID  string    `json:"device_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
