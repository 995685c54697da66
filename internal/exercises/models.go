package exercises

import "github.com/google/uuid"

// ExerciseDTO is a catalog entry with its metabolic equivalent (MET).
type ExerciseDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	METValue float64   `json:"met_value"`
	IconName string    `json:"icon_name"`
}

// ListExercisesResponse is the body of GET /v1/exercises.
type ListExercisesResponse struct {
	Items []ExerciseDTO `json:"items"`
	Total int           `json:"total"`
}
