package nutrition

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TargetsDTO represents daily nutrition targets for a profile.
type TargetsDTO struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	CaloriesKcal float64   `json:"calories_kcal"`
	ProteinG     float64   `json:"protein_g"`
	CarbsG       float64   `json:"carbs_g"`
	FatG         float64   `json:"fat_g"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetTargetsResponse contains targets and a flag indicating if they are defaults.
type GetTargetsResponse struct {
	Targets   TargetsDTO `json:"targets"`
	IsDefault bool       `json:"is_default"`
}

// UpsertTargetsRequest is the request body for PUT /v1/nutrition/targets.
type UpsertTargetsRequest struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	CaloriesKcal float64   `json:"calories_kcal"`
	ProteinG     float64   `json:"protein_g"`
	CarbsG       float64   `json:"carbs_g"`
	FatG         float64   `json:"fat_g"`
}

// Validate validates the upsert request.
func (r *UpsertTargetsRequest) Validate() error {
	if r.ProfileID == uuid.Nil {
		return fmt.Errorf("profile_id is required")
	}

	if r.CaloriesKcal < 800 || r.CaloriesKcal > 6000 {
		return fmt.Errorf("calories_kcal must be between 800 and 6000")
	}

	if r.ProteinG < 0 || r.ProteinG > 400 {
		return fmt.Errorf("protein_g must be between 0 and 400")
	}

	if r.CarbsG < 0 || r.CarbsG > 800 {
		return fmt.Errorf("carbs_g must be between 0 and 800")
	}

	if r.FatG < 0 || r.FatG > 400 {
		return fmt.Errorf("fat_g must be between 0 and 400")
	}

	return nil
}

// GetDefaultTargets returns reasonable default nutrition targets.
func GetDefaultTargets(profileID uuid.UUID) TargetsDTO {
	now := time.Now().UTC()
	return TargetsDTO{
		ProfileID:    profileID,
		CaloriesKcal: 2000,
		ProteinG:     120,
		CarbsG:       250,
		FatG:         70,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
