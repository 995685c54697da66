package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type foodLogStorage struct {
	pool *pgxpool.Pool
}

func newFoodLogStorage(pool *pgxpool.Pool) *foodLogStorage {
	return &foodLogStorage{pool: pool}
}

func (s *foodLogStorage) CreateLog(ctx context.Context, log *storage.FoodLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now()
	}

	query := `
		INSERT INTO food_logs (id, owner_user_id, profile_id, food_name, grams, kcal, protein_g, carbs_g, fat_g, date, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.pool.Exec(ctx, query,
		log.ID,
		log.OwnerUserID,
		log.ProfileID,
		log.FoodName,
		log.Grams,
		log.Kcal,
		log.ProteinG,
		log.CarbsG,
		log.FatG,
		log.Date,
		log.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create food log: %w", err)
	}

	return nil
}

func (s *foodLogStorage) CountLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM food_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3
	`

	var count int
	if err := s.pool.QueryRow(ctx, query, ownerUserID, profileID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count food logs: %w", err)
	}

	return count, nil
}

func (s *foodLogStorage) ListLogsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.FoodLog, error) {
	query := `
		SELECT id, owner_user_id, profile_id, food_name, grams, kcal, protein_g, carbs_g, fat_g, date, logged_at
		FROM food_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3
		ORDER BY logged_at ASC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list food logs: %w", err)
	}
	defer rows.Close()

	return scanFoodLogs(rows)
}

func (s *foodLogStorage) ListLogsSince(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate string) ([]storage.FoodLog, error) {
	query := `
		SELECT id, owner_user_id, profile_id, food_name, grams, kcal, protein_g, carbs_g, fat_g, date, logged_at
		FROM food_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date >= $3
		ORDER BY logged_at DESC
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, profileID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list food logs: %w", err)
	}
	defer rows.Close()

	return scanFoodLogs(rows)
}

func scanFoodLogs(rows pgxRows) ([]storage.FoodLog, error) {
	var logs []storage.FoodLog
	for rows.Next() {
		var l storage.FoodLog
		err := rows.Scan(
			&l.ID,
			&l.OwnerUserID,
			&l.ProfileID,
			&l.FoodName,
			&l.Grams,
			&l.Kcal,
			&l.ProteinG,
			&l.CarbsG,
			&l.FatG,
			&l.Date,
			&l.LoggedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food log: %w", err)
		}
		logs = append(logs, l)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating food logs: %w", rows.Err())
	}

	return logs, nil
}
