package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntryDTO is one recorded bout of exercise.
type EntryDTO struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	Name         string    `json:"name"`
	CaloriesKcal float64   `json:"calories_kcal"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateEntryRequest is the body of POST /v1/activity.
type CreateEntryRequest struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	Name         string    `json:"name"`
	CaloriesKcal float64   `json:"calories_kcal"`
	Date         string    `json:"date,omitempty"` // YYYY-MM-DD, default today
}

// Validate validates the create request.
func (r *CreateEntryRequest) Validate() error {
	if r.ProfileID == uuid.Nil {
		return fmt.Errorf("profile_id is required")
	}

	name := strings.TrimSpace(r.Name)
	if len(name) < 1 || len(name) > 80 {
		return fmt.Errorf("name must be 1-80 characters")
	}

	if r.CaloriesKcal <= 0 || r.CaloriesKcal > 10000 {
		return fmt.Errorf("calories_kcal must be between 0 and 10000")
	}

	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
	}

	return nil
}

// DailyResponse is the body of GET /v1/activity/daily.
type DailyResponse struct {
	Date        string     `json:"date"`
	Items       []EntryDTO `json:"items"`
	TotalBurned float64    `json:"total_burned_kcal"`
}
