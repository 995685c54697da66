package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

type exercisesStorage struct {
	pool *pgxpool.Pool
}

func newExercisesStorage(pool *pgxpool.Pool) *exercisesStorage {
	return &exercisesStorage{pool: pool}
}

func (s *exercisesStorage) ListExercises(ctx context.Context) ([]storage.Exercise, error) {
	query := `
		SELECT id, name, met_value, icon_name
		FROM exercises
		ORDER BY name ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []storage.Exercise
	for rows.Next() {
		var e storage.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.METValue, &e.IconName); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating exercises: %w", rows.Err())
	}

	return exercises, nil
}
