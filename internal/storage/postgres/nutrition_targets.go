package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type nutritionTargetsStorage struct {
	pool *pgxpool.Pool
}

func newNutritionTargetsStorage(pool *pgxpool.Pool) *nutritionTargetsStorage {
	return &nutritionTargetsStorage{pool: pool}
}

func (s *nutritionTargetsStorage) Get(ctx context.Context, ownerUserID string, profileID uuid.UUID) (*storage.NutritionTarget, error) {
	query := `
		SELECT id, owner_user_id, profile_id, calories_kcal, protein_g, carbs_g, fat_g, created_at, updated_at
		FROM nutrition_targets
		WHERE owner_user_id = $1 AND profile_id = $2
	`

	var target storage.NutritionTarget
	err := s.pool.QueryRow(ctx, query, ownerUserID, profileID).Scan(
		&target.ID,
		&target.OwnerUserID,
		&target.ProfileID,
		&target.CaloriesKcal,
		&target.ProteinG,
		&target.CarbsG,
		&target.FatG,
		&target.CreatedAt,
		&target.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nutrition targets: %w", err)
	}

	return &target, nil
}

func (s *nutritionTargetsStorage) Upsert(ctx context.Context, ownerUserID string, profileID uuid.UUID, upsert storage.NutritionTargetUpsert) (*storage.NutritionTarget, error) {
	query := `
		INSERT INTO nutrition_targets (owner_user_id, profile_id, calories_kcal, protein_g, carbs_g, fat_g)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_user_id, profile_id)
		DO UPDATE SET
			calories_kcal = EXCLUDED.calories_kcal,
			protein_g = EXCLUDED.protein_g,
			carbs_g = EXCLUDED.carbs_g,
			fat_g = EXCLUDED.fat_g,
			updated_at = now()
		RETURNING id, owner_user_id, profile_id, calories_kcal, protein_g, carbs_g, fat_g, created_at, updated_at
	`

	var target storage.NutritionTarget
	err := s.pool.QueryRow(
		ctx,
		query,
		ownerUserID,
		profileID,
		upsert.CaloriesKcal,
		upsert.ProteinG,
		upsert.CarbsG,
		upsert.FatG,
	).Scan(
		&target.ID,
		&target.OwnerUserID,
		&target.ProfileID,
		&target.CaloriesKcal,
		&target.ProteinG,
		&target.CarbsG,
		&target.FatG,
		&target.CreatedAt,
		&target.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert nutrition targets: %w", err)
	}

	return &target, nil
}
