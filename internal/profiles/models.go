package profiles

import (
	"time"

	"github.com/google/uuid"
)

// ProfileDTO is the API representation of a profile.
type ProfileDTO struct {
	ID                uuid.UUID `json:"id"`
	OwnerUserID       string    `json:"owner_user_id"`
	Type              string    `json:"type"`
	Name              string    `json:"name"`
	WeightKg          float64   `json:"weight_kg"`
	DietaryPreference string    `json:"dietary_preference"`
	IsPremium         bool      `json:"is_premium"`
	TimeZone          string    `json:"time_zone"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfilesResponse is the body of GET /v1/profiles.
type ProfilesResponse struct {
	Profiles []ProfileDTO `json:"profiles"`
}

// CreateProfileRequest is the body of POST /v1/profiles.
type CreateProfileRequest struct {
	Type              string  `json:"type"`
	Name              string  `json:"name"`
	WeightKg          float64 `json:"weight_kg"`
	DietaryPreference string  `json:"dietary_preference"`
	TimeZone          string  `json:"time_zone"`
}

// UpdateProfileRequest is the body of PATCH /v1/profiles/{id}.
// Pointer fields distinguish "not sent" from zero values.
type UpdateProfileRequest struct {
	Name              *string  `json:"name"`
	WeightKg          *float64 `json:"weight_kg"`
	DietaryPreference *string  `json:"dietary_preference"`
	IsPremium         *bool    `json:"is_premium"`
	TimeZone          *string  `json:"time_zone"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
