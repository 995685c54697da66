package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile represents a tracked person (owner or guest).
type Profile struct {
	ID                uuid.UUID
	OwnerUserID       string
	Type              string // "owner" or "guest"
	Name              string
	WeightKg          float64 // 0 = not configured
	DietaryPreference string  // "", omnivore, vegetarian, vegan, pescatarian
	IsPremium         bool
	TimeZone          string // IANA name, optional
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Storage is the profiles store.
type Storage interface {
	// ListProfiles returns all profiles.
	ListProfiles(ctx context.Context) ([]Profile, error)

	// GetProfile returns a profile by ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)

	// CreateProfile creates a new profile.
	CreateProfile(ctx context.Context, profile *Profile) error

	// UpdateProfile updates a profile.
	UpdateProfile(ctx context.Context, profile *Profile) error

	// DeleteProfile deletes a profile.
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	// Close releases the underlying connection (Postgres).
	Close() error
}

// NutritionTargetsStorage manages per-profile daily nutrition targets.
type NutritionTargetsStorage interface {
	// Get returns the targets for a profile, nil when unset.
	Get(ctx context.Context, ownerUserID string, profileID uuid.UUID) (*NutritionTarget, error)

	// Upsert creates or updates the targets for a profile.
	Upsert(ctx context.Context, ownerUserID string, profileID uuid.UUID, upsert NutritionTargetUpsert) (*NutritionTarget, error)
}

// NutritionTarget represents daily nutrition goals for a profile.
type NutritionTarget struct {
	ID           uuid.UUID
	OwnerUserID  string
	ProfileID    uuid.UUID
	CaloriesKcal float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NutritionTargetUpsert is used for creating/updating targets.
type NutritionTargetUpsert struct {
	CaloriesKcal float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
}

// FoodsStorage manages user recipes and the seeded generic food catalog.
type FoodsStorage interface {
	// CreateUserFood creates a user recipe.
	CreateUserFood(ctx context.Context, food *UserFood) error

	// ListUserFoods returns user recipes with optional case-insensitive name search.
	ListUserFoods(ctx context.Context, ownerUserID string, profileID uuid.UUID, query string, limit int) ([]UserFood, error)

	// SearchGenericByTags returns generic foods matching any of the tags.
	SearchGenericByTags(ctx context.Context, tags []string, limit int) ([]GenericFood, error)

	// ListGeneric returns the full generic catalog.
	ListGeneric(ctx context.Context) ([]GenericFood, error)
}

// UserFood is a recipe the user defined themselves.
type UserFood struct {
	ID              uuid.UUID
	OwnerUserID     string
	ProfileID       uuid.UUID
	Name            string
	KcalPer100g     float64
	ProteinGPer100g float64
	CarbsGPer100g   float64
	FatGPer100g     float64
	UnitLabel       *string
	GramsPerUnit    *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GenericFood is a seeded catalog item, tagged for macro-driven search.
type GenericFood struct {
	ID              uuid.UUID
	Name            string
	Tags            []string
	KcalPer100g     float64
	ProteinGPer100g float64
	CarbsGPer100g   float64
	FatGPer100g     float64
	UnitLabel       *string
	GramsPerUnit    *float64
	CreatedAt       time.Time
}

// FoodLogStorage manages logged eating events.
type FoodLogStorage interface {
	// CreateLog inserts one logged eating event.
	CreateLog(ctx context.Context, log *FoodLog) error

	// CountLogsForDate returns how many logs exist for the date (YYYY-MM-DD).
	CountLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (int, error)

	// ListLogsForDate returns the logs of a single date.
	ListLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]FoodLog, error)

	// ListLogsSince returns logs with date >= fromDate, newest first.
	ListLogsSince(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate string) ([]FoodLog, error)
}

// FoodLog is one logged eating event with resolved absolute macros.
type FoodLog struct {
	ID          uuid.UUID
	OwnerUserID string
	ProfileID   uuid.UUID
	FoodName    string
	Grams       float64
	Kcal        float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	Date        string // YYYY-MM-DD
	LoggedAt    time.Time
}

// ExercisesStorage is the read side of the MET exercise catalog.
type ExercisesStorage interface {
	// ListExercises returns the whole catalog.
	ListExercises(ctx context.Context) ([]Exercise, error)
}

// Exercise is a seeded catalog entry with its metabolic equivalent.
type Exercise struct {
	ID       uuid.UUID
	Name     string
	METValue float64
	IconName string
}

// ActivityStorage manages recorded exercise activity (calories burned).
type ActivityStorage interface {
	// AddActivity inserts one activity entry.
	AddActivity(ctx context.Context, entry *ActivityEntry) error

	// GetDailyBurned returns total calories burned on a date.
	GetDailyBurned(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (float64, error)

	// ListActivitiesForDate returns the activity entries of a date.
	ListActivitiesForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]ActivityEntry, error)
}

// ActivityEntry is one recorded bout of exercise.
type ActivityEntry struct {
	ID           uuid.UUID
	OwnerUserID  string
	ProfileID    uuid.UUID
	Name         string
	CaloriesKcal float64
	Date         string // YYYY-MM-DD
	CreatedAt    time.Time
}

// StatsStorage manages per-user gamification state.
type StatsStorage interface {
	// GetOrCreateStats returns the stats row, creating an all-zero one on first access.
	GetOrCreateStats(ctx context.Context, ownerUserID string) (UserStats, error)

	// UpdateStats replaces the mutable stats fields for a user.
	UpdateStats(ctx context.Context, ownerUserID string, s UserStats) (UserStats, error)
}

// UserStats is persisted gamification state, keyed by owner user.
type UserStats struct {
	OwnerUserID           string
	XPPoints              int
	Level                 int
	DailyStreak           int
	LastActivityDate      *string // YYYY-MM-DD, nil until the first daily log
	TotalFoodsContributed int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AchievementsStorage manages unlocked achievements, unique per (owner, type).
type AchievementsStorage interface {
	// AchievementExists reports whether the user already unlocked the type.
	AchievementExists(ctx context.Context, ownerUserID string, achievementType string) (bool, error)

	// InsertAchievement inserts a new unlock record.
	InsertAchievement(ctx context.Context, a *Achievement) error

	// ListAchievements returns all unlocks for a user, newest first.
	ListAchievements(ctx context.Context, ownerUserID string) ([]Achievement, error)
}

// Achievement is a one-time unlock record.
type Achievement struct {
	ID          uuid.UUID
	OwnerUserID string
	Type        string
	Metadata    []byte // JSON, optional
	UnlockedAt  time.Time
}

// ContributionsStorage manages community food contributions.
type ContributionsStorage interface {
	// CreateContribution inserts a contribution.
	CreateContribution(ctx context.Context, c *FoodContribution) error

	// GetContribution returns a contribution by ID.
	GetContribution(ctx context.Context, id uuid.UUID) (*FoodContribution, error)

	// ListContributions returns the user's contributions, newest first.
	ListContributions(ctx context.Context, ownerUserID string, limit int) ([]FoodContribution, error)

	// SetContributionPhoto attaches photo metadata after a blob upload.
	SetContributionPhoto(ctx context.Context, id uuid.UUID, objectKey string, contentType string, sizeBytes int64) error

	// GetContributionPhotoBlob returns inline photo bytes (memory mode only).
	GetContributionPhotoBlob(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// PutContributionPhotoBlob stores inline photo bytes (memory mode only).
	PutContributionPhotoBlob(ctx context.Context, id uuid.UUID, data []byte, contentType string) error
}

// FoodContribution is a community-contributed food, optionally with a photo.
type FoodContribution struct {
	ID               uuid.UUID
	OwnerUserID      string
	Name             string
	Tags             []string
	KcalPer100g      float64
	ProteinGPer100g  float64
	CarbsGPer100g    float64
	FatGPer100g      float64
	PhotoObjectKey   *string // S3 object key (nil in memory mode)
	PhotoContentType *string
	PhotoSizeBytes   int64
	CreatedAt        time.Time
}
