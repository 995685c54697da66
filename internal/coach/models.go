package coach

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Scope identifies whose data an evaluation reads.
type Scope struct {
	OwnerUserID string
	ProfileID   uuid.UUID
}

// Target is the profile's daily nutrition goal.
type Target struct {
	CaloriesKcal float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
}

// Totals sums what the profile consumed so far today.
type Totals struct {
	Kcal     float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Input is one evaluation request, fully resolved.
type Input struct {
	Profile    storage.Profile
	Target     Target
	Consumed   Totals
	BurnedKcal float64
	Hour       int    // local hour 0-23
	Date       string // local date YYYY-MM-DD
}

// configured reports whether the profile carries everything the engine
// needs: a positive body weight and all four daily targets.
func (in Input) configured() bool {
	return in.Profile.WeightKg > 0 &&
		in.Target.CaloriesKcal > 0 &&
		in.Target.ProteinG > 0 &&
		in.Target.CarbsG > 0 &&
		in.Target.FatG > 0
}

// CandidateSource tells which tier a food candidate came from.
type CandidateSource string

const (
	SourceUserRecipe CandidateSource = "user_recipe"
	SourceHistory    CandidateSource = "history"
	SourceGeneric    CandidateSource = "generic"
)

// FoodCandidate is a normalized food from any tier, macros per 100 g.
type FoodCandidate struct {
	Name            string
	Tags            []string
	KcalPer100g     float64
	ProteinGPer100g float64
	CarbsGPer100g   float64
	FatGPer100g     float64
	UnitLabel       *string
	GramsPerUnit    *float64
	Source          CandidateSource
	TimesEaten      int
	LastEatenDate   string // YYYY-MM-DD, history candidates only
}

// FoodCatalog supplies food candidates tier by tier.
type FoodCatalog interface {
	// UserRecipes returns the profile's own recipes.
	UserRecipes(ctx context.Context, scope Scope) ([]FoodCandidate, error)

	// RecentHistory aggregates the last N days of logs into candidates.
	RecentHistory(ctx context.Context, scope Scope, days int) ([]FoodCandidate, error)

	// GenericByTags returns catalog foods matching any tag.
	GenericByTags(ctx context.Context, tags []string, limit int) ([]FoodCandidate, error)

	// AllGeneric returns the full generic catalog.
	AllGeneric(ctx context.Context) ([]FoodCandidate, error)
}

// ExerciseOption is one exercise with computed minutes to burn a surplus.
type ExerciseOption struct {
	Name     string  `json:"name"`
	METValue float64 `json:"met_value"`
	IconName string  `json:"icon_name"`
	Minutes  float64 `json:"minutes"`
}

// ExerciseCatalog supplies the MET exercise catalog.
type ExerciseCatalog interface {
	Exercises(ctx context.Context) ([]ExerciseOption, error)
}

// Recommendation is one of the concrete recommendation kinds.
type Recommendation interface {
	Kind() string
}

// FirstMealRecommendation proposes the day's first meal.
type FirstMealRecommendation struct {
	Slot      string   `json:"slot"`
	FoodName  string   `json:"food_name"`
	Grams     float64  `json:"grams"`
	Units     *float64 `json:"units,omitempty"`
	UnitLabel *string  `json:"unit_label,omitempty"`
	Kcal      float64  `json:"kcal"`
	Message   string   `json:"message"`
}

func (FirstMealRecommendation) Kind() string { return "first_meal" }

// ExerciseRecommendation proposes exercise to compensate a calorie surplus.
// For premium profiles today's recorded activity is credited: minutes are
// computed from RemainingKcal, not the raw excess.
type ExerciseRecommendation struct {
	SurplusKcal   float64          `json:"surplus_kcal"`
	BurnedKcal    float64          `json:"activity_burned_kcal,omitempty"`
	RemainingKcal float64          `json:"remaining_kcal"`
	Options       []ExerciseOption `json:"options"`
	Message       string           `json:"message"`
}

func (ExerciseRecommendation) Kind() string { return "exercise" }

// FoodRecommendation proposes a portion to close a macro or calorie gap.
type FoodRecommendation struct {
	Focus     string          `json:"focus"` // protein | carbs | fat | calories
	GapG      float64         `json:"gap_g,omitempty"`
	GapKcal   float64         `json:"gap_kcal"`
	FoodName  string          `json:"food_name"`
	Grams     float64         `json:"grams"`
	Units     *float64        `json:"units,omitempty"`
	UnitLabel *string         `json:"unit_label,omitempty"`
	Kcal      float64         `json:"kcal"`
	Source    CandidateSource `json:"source"`
	Message   string          `json:"message"`
}

func (FoodRecommendation) Kind() string { return "food" }

// OnTrackRecommendation means no action is needed.
type OnTrackRecommendation struct {
	Message string `json:"message"`
}

func (OnTrackRecommendation) Kind() string { return "on_track" }

// Result is a finished evaluation. Recommendation is nil when there is
// nothing actionable to suggest (Kind is then KindNone).
type Result struct {
	Status         string         `json:"status"`
	Kind           string         `json:"kind"`
	Recommendation Recommendation `json:"recommendation"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

const (
	StatusOK = "ok"
	// StatusNotConfigured means the profile is missing its weight or a
	// daily target: recommendations are suppressed, not failed.
	StatusNotConfigured = "not_configured"

	KindNone = "none"
)
