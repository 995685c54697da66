package gamification

import (
	"context"
	"testing"

	"github.com/kaloria/coach-hub/internal/storage/memory"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	store := memory.New()
	return NewService(store.GetStatsStorage(), store.GetAchievementsStorage(), nil)
}

func hasAchievement(t *testing.T, s *Service, owner, achievementType string) bool {
	t.Helper()

	items, err := s.ListAchievements(context.Background(), owner)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	for _, a := range items {
		if a.Type == achievementType {
			return true
		}
	}
	return false
}

func TestRecordFoodContribution(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if err := s.RecordFoodContribution(ctx, "u1"); err != nil {
		t.Fatal(err)
	}

	stats, err := s.GetStats(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}

	if stats.XPPoints != XPFoodContribution {
		t.Errorf("expected %d XP, got %d", XPFoodContribution, stats.XPPoints)
	}
	if stats.TotalFoodsContributed != 1 {
		t.Errorf("expected 1 contribution, got %d", stats.TotalFoodsContributed)
	}
	if !hasAchievement(t, s, "u1", AchievementFirstContribution) {
		t.Error("expected first_contribution unlock")
	}
	if hasAchievement(t, s, "u1", AchievementCommunityChef) {
		t.Error("community_chef must not unlock on the first contribution")
	}
}

func TestCommunityChefUnlocksAtTen(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		if err := s.RecordFoodContribution(ctx, "u1"); err != nil {
			t.Fatal(err)
		}
	}
	if hasAchievement(t, s, "u1", AchievementCommunityChef) {
		t.Fatal("community_chef unlocked too early")
	}

	if err := s.RecordFoodContribution(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if !hasAchievement(t, s, "u1", AchievementCommunityChef) {
		t.Error("expected community_chef at exactly 10 contributions")
	}

	stats, _ := s.GetStats(ctx, "u1")
	if stats.XPPoints != 10*XPFoodContribution {
		t.Errorf("expected %d XP, got %d", 10*XPFoodContribution, stats.XPPoints)
	}
}

func TestRecordDailyLogStreak(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	// Consecutive days extend the streak.
	for i, date := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		if err := s.RecordDailyLog(ctx, "u1", date); err != nil {
			t.Fatal(err)
		}
		stats, _ := s.GetStats(ctx, "u1")
		if stats.DailyStreak != i+1 {
			t.Errorf("day %d: expected streak %d, got %d", i+1, i+1, stats.DailyStreak)
		}
	}

	stats, _ := s.GetStats(ctx, "u1")
	if stats.XPPoints != 3*XPDailyLog {
		t.Errorf("expected %d XP, got %d", 3*XPDailyLog, stats.XPPoints)
	}

	// A gap resets the streak to 1.
	if err := s.RecordDailyLog(ctx, "u1", "2026-03-06"); err != nil {
		t.Fatal(err)
	}
	stats, _ = s.GetStats(ctx, "u1")
	if stats.DailyStreak != 1 {
		t.Errorf("expected streak reset to 1, got %d", stats.DailyStreak)
	}
}

func TestRecordDailyLogSameDayAwardsXPKeepsStreak(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if err := s.RecordDailyLog(ctx, "u1", "2026-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordDailyLog(ctx, "u1", "2026-03-01"); err != nil {
		t.Fatal(err)
	}

	stats, _ := s.GetStats(ctx, "u1")
	if stats.XPPoints != 2*XPDailyLog {
		t.Errorf("expected %d XP after two same-day calls, got %d", 2*XPDailyLog, stats.XPPoints)
	}
	if stats.DailyStreak != 1 {
		t.Errorf("same-day log must leave the streak at 1, got %d", stats.DailyStreak)
	}
}

func TestWeekStreakUnlock(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	dates := []string{
		"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
	}
	for i, date := range dates {
		if err := s.RecordDailyLog(ctx, "u1", date); err != nil {
			t.Fatal(err)
		}
		if i < 6 && hasAchievement(t, s, "u1", AchievementWeekStreak) {
			t.Fatalf("week_streak unlocked early at day %d", i+1)
		}
	}

	if !hasAchievement(t, s, "u1", AchievementWeekStreak) {
		t.Error("expected week_streak at a 7-day streak")
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	s.unlockAchievement(ctx, "u1", AchievementFirstContribution)
	s.unlockAchievement(ctx, "u1", AchievementFirstContribution)

	items, err := s.ListAchievements(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 unlock, got %d", len(items))
	}
}

func TestAddXPIsAdditive(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	if _, err := s.AddXP(ctx, "u1", 120, "manual"); err != nil {
		t.Fatal(err)
	}
	res, err := s.AddXP(ctx, "u1", 300, "manual")
	if err != nil {
		t.Fatal(err)
	}

	if res.Stats.XPPoints != 420 {
		t.Errorf("expected 420 XP, got %d", res.Stats.XPPoints)
	}
	if res.Stats.Level != CalculateLevel(420) {
		t.Errorf("expected level %d, got %d", CalculateLevel(420), res.Stats.Level)
	}
	if res.RankUp {
		t.Error("420 XP stays inside Novato, no rank up expected")
	}
}

func TestAddXPReportsRankUp(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	res, err := s.AddXP(ctx, "u1", 4950, "backfill")
	if err != nil {
		t.Fatal(err)
	}
	if res.Rank.Name != "Atleta" {
		t.Fatalf("expected Atleta at 4950 XP, got %s", res.Rank.Name)
	}

	res, err = s.AddXP(ctx, "u1", 60, "daily_log")
	if err != nil {
		t.Fatal(err)
	}
	if !res.RankUp {
		t.Error("expected rank up crossing 5000 XP")
	}
	if res.Rank.Name != "Master Pro" {
		t.Errorf("expected Master Pro at 5010 XP, got %s", res.Rank.Name)
	}
	if res.Stats.Rank.Name != "Master Pro" {
		t.Errorf("stats rank out of sync: %s", res.Stats.Rank.Name)
	}

	res, err = s.AddXP(ctx, "u1", 10, "daily_log")
	if err != nil {
		t.Fatal(err)
	}
	if res.RankUp {
		t.Error("staying inside Master Pro must not report a rank up")
	}
}
