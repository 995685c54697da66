package foods

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserFoodDTO is the API representation of a user recipe.
type UserFoodDTO struct {
	ID              uuid.UUID `json:"id"`
	ProfileID       uuid.UUID `json:"profile_id"`
	Name            string    `json:"name"`
	KcalPer100g     float64   `json:"kcal_per_100g"`
	ProteinGPer100g float64   `json:"protein_g_per_100g"`
	CarbsGPer100g   float64   `json:"carbs_g_per_100g"`
	FatGPer100g     float64   `json:"fat_g_per_100g"`
	UnitLabel       *string   `json:"unit_label,omitempty"`
	GramsPerUnit    *float64  `json:"grams_per_unit,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateUserFoodRequest is the body of POST /v1/foods.
type CreateUserFoodRequest struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	Name            string    `json:"name"`
	KcalPer100g     float64   `json:"kcal_per_100g"`
	ProteinGPer100g float64   `json:"protein_g_per_100g"`
	CarbsGPer100g   float64   `json:"carbs_g_per_100g"`
	FatGPer100g     float64   `json:"fat_g_per_100g"`
	UnitLabel       *string   `json:"unit_label,omitempty"`
	GramsPerUnit    *float64  `json:"grams_per_unit,omitempty"`
}

// Validate validates the create request.
func (r *CreateUserFoodRequest) Validate() error {
	if r.ProfileID == uuid.Nil {
		return fmt.Errorf("profile_id is required")
	}

	name := strings.TrimSpace(r.Name)
	if len(name) < 1 || len(name) > 80 {
		return fmt.Errorf("name must be 1-80 characters")
	}

	if r.KcalPer100g < 0 || r.KcalPer100g > 900 {
		return fmt.Errorf("kcal_per_100g must be between 0 and 900")
	}

	if r.ProteinGPer100g < 0 || r.ProteinGPer100g > 100 {
		return fmt.Errorf("protein_g_per_100g must be between 0 and 100")
	}

	if r.CarbsGPer100g < 0 || r.CarbsGPer100g > 100 {
		return fmt.Errorf("carbs_g_per_100g must be between 0 and 100")
	}

	if r.FatGPer100g < 0 || r.FatGPer100g > 100 {
		return fmt.Errorf("fat_g_per_100g must be between 0 and 100")
	}

	if r.GramsPerUnit != nil && *r.GramsPerUnit <= 0 {
		return fmt.Errorf("grams_per_unit must be positive")
	}

	return nil
}

// ListFoodsResponse is the body of GET /v1/foods.
type ListFoodsResponse struct {
	Items []UserFoodDTO `json:"items"`
	Total int           `json:"total"`
}

// GenericFoodDTO is a catalog item.
type GenericFoodDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Tags            []string  `json:"tags"`
	KcalPer100g     float64   `json:"kcal_per_100g"`
	ProteinGPer100g float64   `json:"protein_g_per_100g"`
	CarbsGPer100g   float64   `json:"carbs_g_per_100g"`
	FatGPer100g     float64   `json:"fat_g_per_100g"`
	UnitLabel       *string   `json:"unit_label,omitempty"`
	GramsPerUnit    *float64  `json:"grams_per_unit,omitempty"`
}

// ListGenericResponse is the body of GET /v1/foods/generic.
type ListGenericResponse struct {
	Items []GenericFoodDTO `json:"items"`
	Total int              `json:"total"`
}

// ContributionDTO is the API representation of a community contribution.
type ContributionDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Tags            []string  `json:"tags"`
	KcalPer100g     float64   `json:"kcal_per_100g"`
	ProteinGPer100g float64   `json:"protein_g_per_100g"`
	CarbsGPer100g   float64   `json:"carbs_g_per_100g"`
	FatGPer100g     float64   `json:"fat_g_per_100g"`
	HasPhoto        bool      `json:"has_photo"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateContributionRequest is the body of POST /v1/foods/contributions.
type CreateContributionRequest struct {
	Name            string   `json:"name"`
	Tags            []string `json:"tags"`
	KcalPer100g     float64  `json:"kcal_per_100g"`
	ProteinGPer100g float64  `json:"protein_g_per_100g"`
	CarbsGPer100g   float64  `json:"carbs_g_per_100g"`
	FatGPer100g     float64  `json:"fat_g_per_100g"`
}

// Validate validates the contribution request.
func (r *CreateContributionRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if len(name) < 1 || len(name) > 80 {
		return fmt.Errorf("name must be 1-80 characters")
	}

	if len(r.Tags) > 10 {
		return fmt.Errorf("at most 10 tags allowed")
	}
	for _, tag := range r.Tags {
		if len(strings.TrimSpace(tag)) == 0 || len(tag) > 30 {
			return fmt.Errorf("tags must be 1-30 characters")
		}
	}

	if r.KcalPer100g < 0 || r.KcalPer100g > 900 {
		return fmt.Errorf("kcal_per_100g must be between 0 and 900")
	}

	if r.ProteinGPer100g < 0 || r.ProteinGPer100g > 100 {
		return fmt.Errorf("protein_g_per_100g must be between 0 and 100")
	}

	if r.CarbsGPer100g < 0 || r.CarbsGPer100g > 100 {
		return fmt.Errorf("carbs_g_per_100g must be between 0 and 100")
	}

	if r.FatGPer100g < 0 || r.FatGPer100g > 100 {
		return fmt.Errorf("fat_g_per_100g must be between 0 and 100")
	}

	return nil
}

// ListContributionsResponse is the body of GET /v1/foods/contributions.
type ListContributionsResponse struct {
	Items []ContributionDTO `json:"items"`
	Total int               `json:"total"`
}
