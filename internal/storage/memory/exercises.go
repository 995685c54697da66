package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

type exercisesStorage struct {
	mu        sync.RWMutex
	exercises []storage.Exercise
}

func newExercisesStorage() *exercisesStorage {
	return &exercisesStorage{exercises: seedExerciseCatalog()}
}

func (s *exercisesStorage) ListExercises(ctx context.Context) ([]storage.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercises := make([]storage.Exercise, len(s.exercises))
	copy(exercises, s.exercises)

	return exercises, nil
}

// seedExerciseCatalog mirrors the rows seeded by the SQL migrations.
func seedExerciseCatalog() []storage.Exercise {
	rows := []struct {
		name string
		met  float64
		icon string
	}{
		{"Caminata rápida", 4.3, "figure.walk"},
		{"Correr", 9.8, "figure.run"},
		{"Bicicleta", 7.5, "bicycle"},
		{"Natación", 6.0, "figure.pool.swim"},
		{"Yoga", 2.5, "figure.yoga"},
		{"Saltar la cuerda", 11.0, "figure.jumprope"},
		{"Baile", 4.5, "music.note"},
		{"Pesas", 3.5, "dumbbell"},
	}

	exercises := make([]storage.Exercise, 0, len(rows))
	for _, r := range rows {
		exercises = append(exercises, storage.Exercise{
			ID:       uuid.New(),
			Name:     r.name,
			METValue: r.met,
			IconName: r.icon,
		})
	}

	return exercises
}
