package gamification

import (
	"time"

	"github.com/google/uuid"
)

// XP awarded per action.
const (
	XPFoodContribution = 50
	XPDailyLog         = 10
)

// Achievement types.
const (
	AchievementFirstContribution = "first_contribution"
	AchievementCommunityChef     = "community_chef"
	AchievementWeekStreak        = "week_streak"
	AchievementMonthStreak       = "month_streak"
)

// StatsDTO is the API representation of a user's gamification state.
type StatsDTO struct {
	XPPoints              int     `json:"xp_points"`
	Level                 int     `json:"level"`
	LevelProgressPct      float64 `json:"level_progress_pct"`
	Rank                  Rank    `json:"rank"`
	DailyStreak           int     `json:"daily_streak"`
	LastActivityDate      *string `json:"last_activity_date,omitempty"`
	TotalFoodsContributed int     `json:"total_foods_contributed"`
}

// AddXPResult reports the stats after an XP grant and whether the grant
// crossed a rank threshold.
type AddXPResult struct {
	Stats  StatsDTO `json:"stats"`
	RankUp bool     `json:"rank_up"`
	Rank   Rank     `json:"rank"`
}

// AchievementDTO is one unlocked achievement.
type AchievementDTO struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ListAchievementsResponse is the body of GET /v1/gamification/achievements.
type ListAchievementsResponse struct {
	Items []AchievementDTO `json:"items"`
	Total int              `json:"total"`
}
