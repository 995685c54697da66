package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

var errContributionNotFound = errors.New("contribution not found")

type contributionsStorage struct {
	pool *pgxpool.Pool
}

func newContributionsStorage(pool *pgxpool.Pool) *contributionsStorage {
	return &contributionsStorage{pool: pool}
}

func (s *contributionsStorage) CreateContribution(ctx context.Context, c *storage.FoodContribution) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()

	query := `
		INSERT INTO food_contributions (id, owner_user_id, name, tags,
		                                kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Tags,
		c.KcalPer100g,
		c.ProteinGPer100g,
		c.CarbsGPer100g,
		c.FatGPer100g,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contribution: %w", err)
	}

	return nil
}

func (s *contributionsStorage) GetContribution(ctx context.Context, id uuid.UUID) (*storage.FoodContribution, error) {
	query := `
		SELECT id, owner_user_id, name, tags, kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		       photo_object_key, photo_content_type, photo_size_bytes, created_at
		FROM food_contributions
		WHERE id = $1
	`

	var c storage.FoodContribution
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.OwnerUserID,
		&c.Name,
		&c.Tags,
		&c.KcalPer100g,
		&c.ProteinGPer100g,
		&c.CarbsGPer100g,
		&c.FatGPer100g,
		&c.PhotoObjectKey,
		&c.PhotoContentType,
		&c.PhotoSizeBytes,
		&c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errContributionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contribution: %w", err)
	}

	return &c, nil
}

func (s *contributionsStorage) ListContributions(ctx context.Context, ownerUserID string, limit int) ([]storage.FoodContribution, error) {
	query := `
		SELECT id, owner_user_id, name, tags, kcal_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g,
		       photo_object_key, photo_content_type, photo_size_bytes, created_at
		FROM food_contributions
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []storage.FoodContribution
	for rows.Next() {
		var c storage.FoodContribution
		err := rows.Scan(
			&c.ID,
			&c.OwnerUserID,
			&c.Name,
			&c.Tags,
			&c.KcalPer100g,
			&c.ProteinGPer100g,
			&c.CarbsGPer100g,
			&c.FatGPer100g,
			&c.PhotoObjectKey,
			&c.PhotoContentType,
			&c.PhotoSizeBytes,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contributions: %w", rows.Err())
	}

	return contributions, nil
}

func (s *contributionsStorage) SetContributionPhoto(ctx context.Context, id uuid.UUID, objectKey string, contentType string, sizeBytes int64) error {
	query := `
		UPDATE food_contributions
		SET photo_object_key = $1, photo_content_type = $2, photo_size_bytes = $3
		WHERE id = $4
	`

	result, err := s.pool.Exec(ctx, query, objectKey, contentType, sizeBytes, id)
	if err != nil {
		return fmt.Errorf("failed to set contribution photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return errContributionNotFound
	}

	return nil
}

func (s *contributionsStorage) GetContributionPhotoBlob(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	query := `
		SELECT photo_blob, photo_content_type
		FROM food_contributions
		WHERE id = $1 AND photo_blob IS NOT NULL
	`

	var data []byte
	var contentType *string
	err := s.pool.QueryRow(ctx, query, id).Scan(&data, &contentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", errContributionNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get contribution photo: %w", err)
	}

	ct := ""
	if contentType != nil {
		ct = *contentType
	}

	return data, ct, nil
}

func (s *contributionsStorage) PutContributionPhotoBlob(ctx context.Context, id uuid.UUID, data []byte, contentType string) error {
	query := `
		UPDATE food_contributions
		SET photo_blob = $1, photo_content_type = $2, photo_size_bytes = $3
		WHERE id = $4
	`

	result, err := s.pool.Exec(ctx, query, data, contentType, int64(len(data)), id)
	if err != nil {
		return fmt.Errorf("failed to store contribution photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return errContributionNotFound
	}

	return nil
}
