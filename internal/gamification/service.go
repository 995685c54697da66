package gamification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kaloria/coach-hub/internal/storage"
)

// Service applies XP, streak and achievement rules on top of the stats store.
type Service struct {
	stats        storage.StatsStorage
	achievements storage.AchievementsStorage
	logger       *zap.Logger
}

// NewService creates a new gamification service.
func NewService(stats storage.StatsStorage, achievements storage.AchievementsStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stats:        stats,
		achievements: achievements,
		logger:       logger,
	}
}

// GetStats returns the user's current gamification state.
func (s *Service) GetStats(ctx context.Context, ownerUserID string) (StatsDTO, error) {
	st, err := s.stats.GetOrCreateStats(ctx, ownerUserID)
	if err != nil {
		return StatsDTO{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return toStatsDTO(st), nil
}

// ListAchievements returns all unlocks for a user, newest first.
func (s *Service) ListAchievements(ctx context.Context, ownerUserID string) ([]AchievementDTO, error) {
	items, err := s.achievements.ListAchievements(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	dtos := make([]AchievementDTO, len(items))
	for i, a := range items {
		dtos[i] = AchievementDTO{
			ID:         a.ID,
			Type:       a.Type,
			UnlockedAt: a.UnlockedAt,
		}
	}

	return dtos, nil
}

// AddXP adds points to the user's total, recomputes the level and
// reports whether the rank tier changed.
func (s *Service) AddXP(ctx context.Context, ownerUserID string, points int, reason string) (AddXPResult, error) {
	st, err := s.stats.GetOrCreateStats(ctx, ownerUserID)
	if err != nil {
		return AddXPResult{}, fmt.Errorf("failed to get stats: %w", err)
	}

	oldRank := RankOf(st.XPPoints)
	st.XPPoints += points
	st.Level = CalculateLevel(st.XPPoints)
	newRank := RankOf(st.XPPoints)

	updated, err := s.stats.UpdateStats(ctx, ownerUserID, st)
	if err != nil {
		return AddXPResult{}, fmt.Errorf("failed to update stats: %w", err)
	}

	s.logger.Debug("xp added",
		zap.String("owner_user_id", ownerUserID),
		zap.Int("points", points),
		zap.String("reason", reason),
		zap.Bool("rank_up", oldRank != newRank))

	return AddXPResult{
		Stats:  toStatsDTO(updated),
		RankUp: oldRank != newRank,
		Rank:   newRank,
	}, nil
}

// RecordFoodContribution awards contribution XP and unlocks contribution
// achievements at their exact thresholds.
func (s *Service) RecordFoodContribution(ctx context.Context, ownerUserID string) error {
	st, err := s.stats.GetOrCreateStats(ctx, ownerUserID)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	before := st.TotalFoodsContributed

	st.XPPoints += XPFoodContribution
	st.Level = CalculateLevel(st.XPPoints)
	st.TotalFoodsContributed++

	if _, err := s.stats.UpdateStats(ctx, ownerUserID, st); err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	if before == 0 {
		s.unlockAchievement(ctx, ownerUserID, AchievementFirstContribution)
	}
	if st.TotalFoodsContributed == 10 {
		s.unlockAchievement(ctx, ownerUserID, AchievementCommunityChef)
	}

	return nil
}

// RecordDailyLog awards daily-log XP and maintains the streak for the date
// (YYYY-MM-DD). The XP is awarded on every call — at-most-once per day is
// the caller's job (the food-log service checks for an existing log first).
// A repeat call for an already-counted date only leaves the streak as is.
func (s *Service) RecordDailyLog(ctx context.Context, ownerUserID string, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	st, err := s.stats.GetOrCreateStats(ctx, ownerUserID)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	switch {
	case st.LastActivityDate == nil:
		st.DailyStreak = 1
	case *st.LastActivityDate == date:
		// Already logged today: streak unchanged.
	case *st.LastActivityDate == previousDay(date):
		st.DailyStreak++
	default:
		st.DailyStreak = 1
	}

	st.XPPoints += XPDailyLog
	st.Level = CalculateLevel(st.XPPoints)
	st.LastActivityDate = &date

	if _, err := s.stats.UpdateStats(ctx, ownerUserID, st); err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}

	if st.DailyStreak == 7 {
		s.unlockAchievement(ctx, ownerUserID, AchievementWeekStreak)
	}
	if st.DailyStreak == 30 {
		s.unlockAchievement(ctx, ownerUserID, AchievementMonthStreak)
	}

	return nil
}

// unlockAchievement records a one-time unlock. Failures are logged and
// swallowed: XP was already awarded and must not be rolled back.
func (s *Service) unlockAchievement(ctx context.Context, ownerUserID string, achievementType string) {
	exists, err := s.achievements.AchievementExists(ctx, ownerUserID, achievementType)
	if err != nil {
		s.logger.Warn("achievement check failed",
			zap.String("owner_user_id", ownerUserID),
			zap.String("type", achievementType),
			zap.Error(err))
		return
	}
	if exists {
		return
	}

	a := &storage.Achievement{
		OwnerUserID: ownerUserID,
		Type:        achievementType,
	}
	if err := s.achievements.InsertAchievement(ctx, a); err != nil {
		s.logger.Warn("achievement unlock failed",
			zap.String("owner_user_id", ownerUserID),
			zap.String("type", achievementType),
			zap.Error(err))
	}
}

func previousDay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}

func toStatsDTO(st storage.UserStats) StatsDTO {
	return StatsDTO{
		XPPoints:              st.XPPoints,
		Level:                 st.Level,
		LevelProgressPct:      LevelProgress(st.XPPoints),
		Rank:                  RankOf(st.XPPoints),
		DailyStreak:           st.DailyStreak,
		LastActivityDate:      st.LastActivityDate,
		TotalFoodsContributed: st.TotalFoodsContributed,
	}
}
