package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// MemoryStorage is the in-memory implementation used in local mode and tests.
type MemoryStorage struct {
	mu               sync.RWMutex
	profiles         map[uuid.UUID]storage.Profile
	nutritionTargets *nutritionTargetsStorage
	foods            *foodsStorage
	foodLogs         *foodLogStorage
	exercises        *exercisesStorage
	activity         *activityStorage
	stats            *statsStorage
	achievements     *achievementsStorage
	contributions    *contributionsStorage
}

// New creates a MemoryStorage with a default owner profile and seeded catalogs.
func New() *MemoryStorage {
	ownerID := uuid.New()
	owner := storage.Profile{
		ID:          ownerID,
		OwnerUserID: "default",
		Type:        "owner",
		Name:        "Yo",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return &MemoryStorage{
		profiles: map[uuid.UUID]storage.Profile{
			ownerID: owner,
		},
		nutritionTargets: newNutritionTargetsStorage(),
		foods:            newFoodsStorage(),
		foodLogs:         newFoodLogStorage(),
		exercises:        newExercisesStorage(),
		activity:         newActivityStorage(),
		stats:            newStatsStorage(),
		achievements:     newAchievementsStorage(),
		contributions:    newContributionsStorage(),
	}
}

func (m *MemoryStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]storage.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (m *MemoryStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

func (m *MemoryStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[profile.ID]; !ok {
		return ErrNotFound
	}

	profile.UpdatedAt = time.Now()
	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return ErrNotFound
	}

	delete(m.profiles, id)

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// GetNutritionTargetsStorage returns the nutrition targets sub-storage.
func (m *MemoryStorage) GetNutritionTargetsStorage() storage.NutritionTargetsStorage {
	return m.nutritionTargets
}

// GetFoodsStorage returns the foods sub-storage.
func (m *MemoryStorage) GetFoodsStorage() storage.FoodsStorage {
	return m.foods
}

// GetFoodLogStorage returns the food log sub-storage.
func (m *MemoryStorage) GetFoodLogStorage() storage.FoodLogStorage {
	return m.foodLogs
}

// GetExercisesStorage returns the exercise catalog sub-storage.
func (m *MemoryStorage) GetExercisesStorage() storage.ExercisesStorage {
	return m.exercises
}

// GetActivityStorage returns the activity sub-storage.
func (m *MemoryStorage) GetActivityStorage() storage.ActivityStorage {
	return m.activity
}

// GetStatsStorage returns the gamification stats sub-storage.
func (m *MemoryStorage) GetStatsStorage() storage.StatsStorage {
	return m.stats
}

// GetAchievementsStorage returns the achievements sub-storage.
func (m *MemoryStorage) GetAchievementsStorage() storage.AchievementsStorage {
	return m.achievements
}

// GetContributionsStorage returns the contributions sub-storage.
func (m *MemoryStorage) GetContributionsStorage() storage.ContributionsStorage {
	return m.contributions
}
