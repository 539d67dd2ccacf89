package models

import "time"

// City is a participating city with its IANA timezone. The identifier is
// validated once at write time; read paths resolve it leniently and fall back
// to UTC when the host tzdata does not know it.
type City struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Country   string    `db:"country" json:"country"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CityFilter captures filtering criteria for listing cities.
type CityFilter struct {
	Search   string
	Country  string
	Page     int
	PageSize int
}
