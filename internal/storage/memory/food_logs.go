package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type foodLogStorage struct {
	mu   sync.RWMutex
	logs []storage.FoodLog
}

func newFoodLogStorage() *foodLogStorage {
	return &foodLogStorage{}
}

func (s *foodLogStorage) CreateLog(ctx context.Context, log *storage.FoodLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now()
	}

	s.logs = append(s.logs, *log)

	return nil
}

func (s *foodLogStorage) CountLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.logs {
		if l.OwnerUserID == ownerUserID && l.ProfileID == profileID && l.Date == date {
			count++
		}
	}

	return count, nil
}

func (s *foodLogStorage) ListLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.FoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]storage.FoodLog, 0)
	for _, l := range s.logs {
		if l.OwnerUserID == ownerUserID && l.ProfileID == profileID && l.Date == date {
			logs = append(logs, l)
		}
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].LoggedAt.Before(logs[j].LoggedAt) })

	return logs, nil
}

func (s *foodLogStorage) ListLogsSince(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate string) ([]storage.FoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]storage.FoodLog, 0)
	for _, l := range s.logs {
		if l.OwnerUserID == ownerUserID && l.ProfileID == profileID && l.Date >= fromDate {
			logs = append(logs, l)
		}
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].LoggedAt.After(logs[j].LoggedAt) })

	return logs, nil
}
