package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type foodsStorage struct {
	pool *pgxpool.Pool
}

func newFoodsStorage(pool *pgxpool.Pool) *foodsStorage {
	return &foodsStorage{pool: pool}
}

func (s *foodsStorage) CreateUserFood(ctx context.Context, food *storage.UserFood) error {
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}

	query := `
		INSERT INTO user_foods (id, owner_user_id, profile_id, name,
		                        kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		                        unit_label, grams_per_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		food.ID,
		food.OwnerUserID,
		food.ProfileID,
		food.Name,
		food.KcalPer100g,
		food.ProteinGPer100g,
		food.CarbsGPer100g,
		food.FatGPer100g,
		food.UnitLabel,
		food.GramsPerUnit,
	).Scan(&food.CreatedAt, &food.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "user_foods_name_unique_idx") {
			return fmt.Errorf("food with this name already exists")
		}
		return fmt.Errorf("failed to create user food: %w", err)
	}

	return nil
}

func (s *foodsStorage) ListUserFoods(ctx context.Context, ownerUserID string, profileID uuid.UUID, query string, limit int) ([]storage.UserFood, error) {
	var args []interface{}
	whereClause := "WHERE owner_user_id = $1 AND profile_id = $2"
	args = append(args, ownerUserID, profileID)

	if query != "" {
		whereClause += " AND LOWER(name) LIKE $3"
		args = append(args, "%"+strings.ToLower(query)+"%")
	}

	listQuery := fmt.Sprintf(`
		SELECT id, owner_user_id, profile_id, name,
		       kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		       unit_label, grams_per_unit, created_at, updated_at
		FROM user_foods
		%s
		ORDER BY name ASC
		LIMIT $%d
	`, whereClause, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user foods: %w", err)
	}
	defer rows.Close()

	var foods []storage.UserFood
	for rows.Next() {
		var f storage.UserFood
		err := rows.Scan(
			&f.ID,
			&f.OwnerUserID,
			&f.ProfileID,
			&f.Name,
			&f.KcalPer100g,
			&f.ProteinGPer100g,
			&f.CarbsGPer100g,
			&f.FatGPer100g,
			&f.UnitLabel,
			&f.GramsPerUnit,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user food: %w", err)
		}
		foods = append(foods, f)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user foods: %w", rows.Err())
	}

	return foods, nil
}

func (s *foodsStorage) SearchGenericByTags(ctx context.Context, tags []string, limit int) ([]storage.GenericFood, error) {
	query := `
		SELECT id, name, tags, kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		       unit_label, grams_per_unit, created_at
		FROM generic_foods
		WHERE tags && $1
		ORDER BY name ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, tags, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search generic foods: %w", err)
	}
	defer rows.Close()

	return scanGenericFoods(rows)
}

func (s *foodsStorage) ListGeneric(ctx context.Context) ([]storage.GenericFood, error) {
	query := `
		SELECT id, name, tags, kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		       unit_label, grams_per_unit, created_at
		FROM generic_foods
		ORDER BY name ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list generic foods: %w", err)
	}
	defer rows.Close()

	return scanGenericFoods(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanGenericFoods(rows pgxRows) ([]storage.GenericFood, error) {
	var foods []storage.GenericFood
	for rows.Next() {
		var f storage.GenericFood
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Tags,
			&f.KcalPer100g,
			&f.ProteinGPer100g,
			&f.CarbsGPer100g,
			&f.FatGPer100g,
			&f.UnitLabel,
			&f.GramsPerUnit,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generic food: %w", err)
		}
		foods = append(foods, f)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating generic foods: %w", rows.Err())
	}

	return foods, nil
}
