package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaloria/coach-hub/internal/storage"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// PostgresStorage is the pgx-backed implementation of all storage interfaces.
type PostgresStorage struct {
	pool             *pgxpool.Pool
	nutritionTargets *nutritionTargetsStorage
	foods            *foodsStorage
	foodLogs         *foodLogStorage
	exercises        *exercisesStorage
	activity         *activityStorage
	stats            *statsStorage
	achievements     *achievementsStorage
	contributions    *contributionsStorage
}

// New creates a PostgresStorage and ensures the default owner profile exists.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	ps := &PostgresStorage{
		pool:             pool,
		nutritionTargets: newNutritionTargetsStorage(pool),
		foods:            newFoodsStorage(pool),
		foodLogs:         newFoodLogStorage(pool),
		exercises:        newExercisesStorage(pool),
		activity:         newActivityStorage(pool),
		stats:            newStatsStorage(pool),
		achievements:     newAchievementsStorage(pool),
		contributions:    newContributionsStorage(pool),
	}

	if err := ps.ensureOwnerProfile(ctx); err != nil {
		return nil, err
	}

	return ps, nil
}

// ensureOwnerProfile creates the default owner profile if it is missing.
func (p *PostgresStorage) ensureOwnerProfile(ctx context.Context) error {
	query := `
		INSERT INTO profiles (id, owner_user_id, type, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`

	ownerID := uuid.New()
	now := time.Now()

	_, err := p.pool.Exec(ctx, query,
		ownerID,
		"default",
		"owner",
		"Yo",
		now,
		now,
	)

	return err
}

func (p *PostgresStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	query := `
		SELECT id, owner_user_id, type, name, weight_kg, dietary_preference, is_premium, time_zone, created_at, updated_at
		FROM profiles
		ORDER BY created_at ASC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []storage.Profile{}
	for rows.Next() {
		var prof storage.Profile
		err := rows.Scan(
			&prof.ID,
			&prof.OwnerUserID,
			&prof.Type,
			&prof.Name,
			&prof.WeightKg,
			&prof.DietaryPreference,
			&prof.IsPremium,
			&prof.TimeZone,
			&prof.CreatedAt,
			&prof.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, prof)
	}

	return profiles, rows.Err()
}

func (p *PostgresStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	query := `
		SELECT id, owner_user_id, type, name, weight_kg, dietary_preference, is_premium, time_zone, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var prof storage.Profile
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&prof.ID,
		&prof.OwnerUserID,
		&prof.Type,
		&prof.Name,
		&prof.WeightKg,
		&prof.DietaryPreference,
		&prof.IsPremium,
		&prof.TimeZone,
		&prof.CreatedAt,
		&prof.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, owner_user_id, type, name, weight_kg, dietary_preference, is_premium, time_zone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.pool.Exec(ctx, query,
		profile.ID,
		profile.OwnerUserID,
		profile.Type,
		profile.Name,
		profile.WeightKg,
		profile.DietaryPreference,
		profile.IsPremium,
		profile.TimeZone,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (p *PostgresStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE profiles
		SET name = $1, weight_kg = $2, dietary_preference = $3, is_premium = $4, time_zone = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := p.pool.Exec(ctx, query,
		profile.Name,
		profile.WeightKg,
		profile.DietaryPreference,
		profile.IsPremium,
		profile.TimeZone,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// GetNutritionTargetsStorage returns the nutrition targets sub-storage.
func (p *PostgresStorage) GetNutritionTargetsStorage() storage.NutritionTargetsStorage {
	return p.nutritionTargets
}

// GetFoodsStorage returns the foods sub-storage.
func (p *PostgresStorage) GetFoodsStorage() storage.FoodsStorage {
	return p.foods
}

// GetFoodLogStorage returns the food log sub-storage.
func (p *PostgresStorage) GetFoodLogStorage() storage.FoodLogStorage {
	return p.foodLogs
}

// GetExercisesStorage returns the exercise catalog sub-storage.
func (p *PostgresStorage) GetExercisesStorage() storage.ExercisesStorage {
	return p.exercises
}

// GetActivityStorage returns the activity sub-storage.
func (p *PostgresStorage) GetActivityStorage() storage.ActivityStorage {
	return p.activity
}

// GetStatsStorage returns the gamification stats sub-storage.
func (p *PostgresStorage) GetStatsStorage() storage.StatsStorage {
	return p.stats
}

// GetAchievementsStorage returns the achievements sub-storage.
func (p *PostgresStorage) GetAchievementsStorage() storage.AchievementsStorage {
	return p.achievements
}

// GetContributionsStorage returns the contributions sub-storage.
func (p *PostgresStorage) GetContributionsStorage() storage.ContributionsStorage {
	return p.contributions
}
