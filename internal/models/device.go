package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Device is an anonymous API client. Devices register once, receive a signed
// token and use it to scope their favorites; there are no user accounts.
type Device struct {
	ID        string    `db:"id" json:"id"`
	Platform  string    `db:"platform" json:"platform"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	LastSeen  time.Time `db:"last_seen" json:"last_seen"`
}

// DeviceClaims is the JWT payload for device tokens.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	Platform string `json:"platform,omitempty"`
	jwt.RegisteredClaims
}
