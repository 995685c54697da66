package exercises

import (
	"context"
	"fmt"

	"github.com/kaloria/coach-hub/internal/storage"
)

// Service exposes the MET exercise catalog.
type Service struct {
	storage storage.ExercisesStorage
}

// NewService creates a new exercises service.
func NewService(st storage.ExercisesStorage) *Service {
	return &Service{storage: st}
}

// List returns the whole exercise catalog.
func (s *Service) List(ctx context.Context) ([]ExerciseDTO, error) {
	items, err := s.storage.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	dtos := make([]ExerciseDTO, len(items))
	for i, e := range items {
		dtos[i] = ExerciseDTO{
			ID:       e.ID,
			Name:     e.Name,
			METValue: e.METValue,
			IconName: e.IconName,
		}
	}

	return dtos, nil
}
