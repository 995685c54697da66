package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type activityStorage struct {
	pool *pgxpool.Pool
}

func newActivityStorage(pool *pgxpool.Pool) *activityStorage {
	return &activityStorage{pool: pool}
}

func (s *activityStorage) AddActivity(ctx context.Context, entry *storage.ActivityEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO activity_entries (id, owner_user_id, profile_id, name, calories_kcal, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		entry.ID,
		entry.OwnerUserID,
		entry.ProfileID,
		entry.Name,
		entry.CaloriesKcal,
		entry.Date,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}

	return nil
}

func (s *activityStorage) GetDailyBurned(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(calories_kcal), 0)
		FROM activity_entries
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3
	`

	var total float64
	if err := s.pool.QueryRow(ctx, query, ownerUserID, profileID, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum daily burned calories: %w", err)
	}

	return total, nil
}

func (s *activityStorage) ListActivitiesForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.ActivityEntry, error) {
	query := `
		SELECT id, owner_user_id, profile_id, name, calories_kcal, date, created_at
		FROM activity_entries
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3
		ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var entries []storage.ActivityEntry
	for rows.Next() {
		var e storage.ActivityEntry
		err := rows.Scan(
			&e.ID,
			&e.OwnerUserID,
			&e.ProfileID,
			&e.Name,
			&e.CaloriesKcal,
			&e.Date,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating activities: %w", rows.Err())
	}

	return entries, nil
}
