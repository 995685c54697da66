package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type targetKey struct {
	owner     string
	profileID uuid.UUID
}

type nutritionTargetsStorage struct {
	mu      sync.RWMutex
	targets map[targetKey]storage.NutritionTarget
}

func newNutritionTargetsStorage() *nutritionTargetsStorage {
	return &nutritionTargetsStorage{
		targets: make(map[targetKey]storage.NutritionTarget),
	}
}

func (s *nutritionTargetsStorage) Get(ctx context.Context, ownerUserID string, profileID uuid.UUID) (*storage.NutritionTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.targets[targetKey{ownerUserID, profileID}]
	if !ok {
		return nil, nil
	}

	return &t, nil
}

func (s *nutritionTargetsStorage) Upsert(ctx context.Context, ownerUserID string, profileID uuid.UUID, upsert storage.NutritionTargetUpsert) (*storage.NutritionTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := targetKey{ownerUserID, profileID}
	now := time.Now()

	t, ok := s.targets[key]
	if !ok {
		t = storage.NutritionTarget{
			ID:          uuid.New(),
			OwnerUserID: ownerUserID,
			ProfileID:   profileID,
			CreatedAt:   now,
		}
	}

	t.CaloriesKcal = upsert.CaloriesKcal
	t.ProteinG = upsert.ProteinG
	t.CarbsG = upsert.CarbsG
	t.FatG = upsert.FatG
	t.UpdatedAt = now

	s.targets[key] = t

	return &t, nil
}
