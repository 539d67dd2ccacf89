package dto

// CityRequest is the payload for creating or updating a city.
type CityRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Country  string `json:"country" validate:"required,min=1,max=120"`
	Timezone string `json:"timezone" validate:"required"`
}
