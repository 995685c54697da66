package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type statsStorage struct {
	pool *pgxpool.Pool
}

func newStatsStorage(pool *pgxpool.Pool) *statsStorage {
	return &statsStorage{pool: pool}
}

func (s *statsStorage) GetOrCreateStats(ctx context.Context, ownerUserID string) (storage.UserStats, error) {
	// Insert-or-noop first so the read below always finds a row.
	query := `
		INSERT INTO user_stats (owner_user_id)
		VALUES ($1)
		ON CONFLICT (owner_user_id) DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, query, ownerUserID); err != nil {
		return storage.UserStats{}, fmt.Errorf("failed to ensure user stats: %w", err)
	}

	var st storage.UserStats
	err := s.pool.QueryRow(ctx, `
		SELECT owner_user_id, xp_points, level, daily_streak, last_activity_date, total_foods_contributed, created_at, updated_at
		FROM user_stats
		WHERE owner_user_id = $1
	`, ownerUserID).Scan(
		&st.OwnerUserID,
		&st.XPPoints,
		&st.Level,
		&st.DailyStreak,
		&st.LastActivityDate,
		&st.TotalFoodsContributed,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return storage.UserStats{}, fmt.Errorf("failed to get user stats: %w", err)
	}

	return st, nil
}

func (s *statsStorage) UpdateStats(ctx context.Context, ownerUserID string, upd storage.UserStats) (storage.UserStats, error) {
	query := `
		UPDATE user_stats
		SET xp_points = $1, level = $2, daily_streak = $3, last_activity_date = $4,
		    total_foods_contributed = $5, updated_at = now()
		WHERE owner_user_id = $6
		RETURNING owner_user_id, xp_points, level, daily_streak, last_activity_date, total_foods_contributed, created_at, updated_at
	`

	var st storage.UserStats
	err := s.pool.QueryRow(ctx, query,
		upd.XPPoints,
		upd.Level,
		upd.DailyStreak,
		upd.LastActivityDate,
		upd.TotalFoodsContributed,
		ownerUserID,
	).Scan(
		&st.OwnerUserID,
		&st.XPPoints,
		&st.Level,
		&st.DailyStreak,
		&st.LastActivityDate,
		&st.TotalFoodsContributed,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return storage.UserStats{}, fmt.Errorf("failed to update user stats: %w", err)
	}

	return st, nil
}

type achievementsStorage struct {
	pool *pgxpool.Pool
}

func newAchievementsStorage(pool *pgxpool.Pool) *achievementsStorage {
	return &achievementsStorage{pool: pool}
}

func (s *achievementsStorage) AchievementExists(ctx context.Context, ownerUserID string, achievementType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM achievements
			WHERE owner_user_id = $1 AND achievement_type = $2
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, ownerUserID, achievementType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}

	return exists, nil
}

func (s *achievementsStorage) InsertAchievement(ctx context.Context, a *storage.Achievement) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query := `
		INSERT INTO achievements (id, owner_user_id, achievement_type, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_user_id, achievement_type) DO NOTHING
		RETURNING unlocked_at
	`

	err := s.pool.QueryRow(ctx, query, a.ID, a.OwnerUserID, a.Type, a.Metadata).Scan(&a.UnlockedAt)
	if err != nil {
		// ON CONFLICT DO NOTHING returns no rows when the unlock already exists.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to insert achievement: %w", err)
	}

	return nil
}

func (s *achievementsStorage) ListAchievements(ctx context.Context, ownerUserID string) ([]storage.Achievement, error) {
	query := `
		SELECT id, owner_user_id, achievement_type, metadata, unlocked_at
		FROM achievements
		WHERE owner_user_id = $1
		ORDER BY unlocked_at DESC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []storage.Achievement
	for rows.Next() {
		var a storage.Achievement
		if err := rows.Scan(&a.ID, &a.OwnerUserID, &a.Type, &a.Metadata, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", rows.Err())
	}

	return achievements, nil
}
