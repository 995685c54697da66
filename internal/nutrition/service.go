package nutrition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
)

// Service handles nutrition targets business logic.
type Service struct {
	storage        storage.Storage
	targetsStorage storage.NutritionTargetsStorage
}

// NewService creates a new nutrition service.
func NewService(storage storage.Storage, targetsStorage storage.NutritionTargetsStorage) *Service {
	return &Service{
		storage:        storage,
		targetsStorage: targetsStorage,
	}
}

// GetOrDefault returns nutrition targets for a profile or defaults if not set.
// Performs ownership check - returns error if profile doesn't belong to user.
func (s *Service) GetOrDefault(ctx context.Context, ownerUserID string, profileID uuid.UUID) (TargetsDTO, bool, error) {
	profile, err := s.storage.GetProfile(ctx, profileID)
	if err != nil {
		return TargetsDTO{}, false, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil || profile.OwnerUserID != ownerUserID {
		return TargetsDTO{}, false, fmt.Errorf("profile_not_found")
	}

	target, err := s.targetsStorage.Get(ctx, ownerUserID, profileID)
	if err != nil {
		return TargetsDTO{}, false, fmt.Errorf("failed to get nutrition targets: %w", err)
	}

	if target == nil {
		defaults := GetDefaultTargets(profileID)
		return defaults, true, nil
	}

	dto := TargetsDTO{
		ProfileID:    target.ProfileID,
		CaloriesKcal: target.CaloriesKcal,
		ProteinG:     target.ProteinG,
		CarbsG:       target.CarbsG,
		FatG:         target.FatG,
		CreatedAt:    target.CreatedAt,
		UpdatedAt:    target.UpdatedAt,
	}

	return dto, false, nil
}

// Upsert creates or updates nutrition targets for a profile.
// Performs ownership check - returns error if profile doesn't belong to user.
func (s *Service) Upsert(ctx context.Context, ownerUserID string, req UpsertTargetsRequest) (TargetsDTO, error) {
	if err := req.Validate(); err != nil {
		return TargetsDTO{}, fmt.Errorf("invalid_request: %w", err)
	}

	profile, err := s.storage.GetProfile(ctx, req.ProfileID)
	if err != nil {
		return TargetsDTO{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil || profile.OwnerUserID != ownerUserID {
		return TargetsDTO{}, fmt.Errorf("profile_not_found")
	}

	upsert := storage.NutritionTargetUpsert{
		CaloriesKcal: req.CaloriesKcal,
		ProteinG:     req.ProteinG,
		CarbsG:       req.CarbsG,
		FatG:         req.FatG,
	}

	target, err := s.targetsStorage.Upsert(ctx, ownerUserID, req.ProfileID, upsert)
	if err != nil {
		return TargetsDTO{}, fmt.Errorf("failed to upsert nutrition targets: %w", err)
	}

	dto := TargetsDTO{
		ProfileID:    target.ProfileID,
		CaloriesKcal: target.CaloriesKcal,
		ProteinG:     target.ProteinG,
		CarbsG:       target.CarbsG,
		FatG:         target.FatG,
		CreatedAt:    target.CreatedAt,
		UpdatedAt:    target.UpdatedAt,
	}

	return dto, nil
}
