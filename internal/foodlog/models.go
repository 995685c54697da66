package foodlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogDTO is the API representation of one logged eating event.
type LogDTO struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	FoodName  string    `json:"food_name"`
	Grams     float64   `json:"grams"`
	Kcal      float64   `json:"kcal"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	Date      string    `json:"date"`
	LoggedAt  time.Time `json:"logged_at"`
}

// CreateLogRequest is the body of POST /v1/logs.
// Macros are absolute amounts for the logged portion, not per-100g.
type CreateLogRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	FoodName  string    `json:"food_name"`
	Grams     float64   `json:"grams"`
	Kcal      float64   `json:"kcal"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD, default today
}

// Validate validates the create request.
func (r *CreateLogRequest) Validate() error {
	if r.ProfileID == uuid.Nil {
		return fmt.Errorf("profile_id is required")
	}

	name := strings.TrimSpace(r.FoodName)
	if len(name) < 1 || len(name) > 120 {
		return fmt.Errorf("food_name must be 1-120 characters")
	}

	if r.Grams <= 0 || r.Grams > 5000 {
		return fmt.Errorf("grams must be between 0 and 5000")
	}

	if r.Kcal < 0 || r.Kcal > 10000 {
		return fmt.Errorf("kcal must be between 0 and 10000")
	}

	if r.ProteinG < 0 || r.CarbsG < 0 || r.FatG < 0 {
		return fmt.Errorf("macros cannot be negative")
	}

	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
	}

	return nil
}

// DailyTotals sums the day's consumed macros.
type DailyTotals struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DailyResponse is the body of GET /v1/logs/daily.
type DailyResponse struct {
	Date   string      `json:"date"`
	Items  []LogDTO    `json:"items"`
	Totals DailyTotals `json:"totals"`
}

// HistoryItem is one food aggregated over the history window.
type HistoryItem struct {
	FoodName        string  `json:"food_name"`
	TimesEaten      int     `json:"times_eaten"`
	LastEatenDate   string  `json:"last_eaten_date"`
	KcalPer100g     float64 `json:"kcal_per_100g"`
	ProteinGPer100g float64 `json:"protein_g_per_100g"`
	CarbsGPer100g   float64 `json:"carbs_g_per_100g"`
	FatGPer100g     float64 `json:"fat_g_per_100g"`
}

// HistoryResponse is the body of GET /v1/logs/history.
type HistoryResponse struct {
	Days  int           `json:"days"`
	Items []HistoryItem `json:"items"`
}
