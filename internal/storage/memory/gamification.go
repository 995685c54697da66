package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type statsStorage struct {
	mu    sync.Mutex
	stats map[string]storage.UserStats
}

func newStatsStorage() *statsStorage {
	return &statsStorage{stats: make(map[string]storage.UserStats)}
}

func (s *statsStorage) GetOrCreateStats(ctx context.Context, ownerUserID string) (storage.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[ownerUserID]
	if !ok {
		now := time.Now()
		st = storage.UserStats{
			OwnerUserID: ownerUserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.stats[ownerUserID] = st
	}

	return st, nil
}

func (s *statsStorage) UpdateStats(ctx context.Context, ownerUserID string, upd storage.UserStats) (storage.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[ownerUserID]
	if !ok {
		st = storage.UserStats{OwnerUserID: ownerUserID, CreatedAt: time.Now()}
	}

	st.XPPoints = upd.XPPoints
	st.Level = upd.Level
	st.DailyStreak = upd.DailyStreak
	st.LastActivityDate = upd.LastActivityDate
	st.TotalFoodsContributed = upd.TotalFoodsContributed
	st.UpdatedAt = time.Now()

	s.stats[ownerUserID] = st

	return st, nil
}

type achievementKey struct {
	owner string
	typ   string
}

type achievementsStorage struct {
	mu       sync.Mutex
	unlocked map[achievementKey]storage.Achievement
}

func newAchievementsStorage() *achievementsStorage {
	return &achievementsStorage{unlocked: make(map[achievementKey]storage.Achievement)}
}

func (s *achievementsStorage) AchievementExists(ctx context.Context, ownerUserID string, achievementType string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.unlocked[achievementKey{ownerUserID, achievementType}]
	return ok, nil
}

func (s *achievementsStorage) InsertAchievement(ctx context.Context, a *storage.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := achievementKey{a.OwnerUserID, a.Type}
	if _, ok := s.unlocked[key]; ok {
		// Unique per (owner, type), matching the DB constraint.
		return nil
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now()
	}

	s.unlocked[key] = *a

	return nil
}

func (s *achievementsStorage) ListAchievements(ctx context.Context, ownerUserID string) ([]storage.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	achievements := make([]storage.Achievement, 0)
	for key, a := range s.unlocked {
		if key.owner == ownerUserID {
			achievements = append(achievements, a)
		}
	}

	sort.Slice(achievements, func(i, j int) bool {
		return achievements[i].UnlockedAt.After(achievements[j].UnlockedAt)
	})

	return achievements, nil
}
