package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type activityStorage struct {
	mu      sync.RWMutex
	entries []storage.ActivityEntry
}

func newActivityStorage() *activityStorage {
	return &activityStorage{}
}

func (s *activityStorage) AddActivity(ctx context.Context, entry *storage.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	s.entries = append(s.entries, *entry)

	return nil
}

func (s *activityStorage) GetDailyBurned(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, e := range s.entries {
		if e.OwnerUserID == ownerUserID && e.ProfileID == profileID && e.Date == date {
			total += e.CaloriesKcal
		}
	}

	return total, nil
}

func (s *activityStorage) ListActivitiesForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]storage.ActivityEntry, 0)
	for _, e := range s.entries {
		if e.OwnerUserID == ownerUserID && e.ProfileID == profileID && e.Date == date {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })

	return entries, nil
}
