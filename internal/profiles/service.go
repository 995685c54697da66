package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/userctx"
)

var (
	ErrInvalidType       = errors.New("invalid profile type")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidWeight     = errors.New("weight must be between 0 and 500 kg")
	ErrInvalidDiet       = errors.New("unknown dietary preference")
	ErrInvalidTimeZone   = errors.New("unknown time zone")
	ErrCannotDeleteOwner = errors.New("cannot delete owner profile")
	ErrNotFound          = errors.New("profile not found")
)

// Dietary preferences the recommendation engine understands.
var validDietaryPreferences = map[string]bool{
	"":            true,
	"none":        true,
	"vegan":       true,
	"vegetarian":  true,
	"pescatarian": true,
}

// Service holds profile business logic.
type Service struct {
	storage storage.Storage
}

func NewService(st storage.Storage) *Service {
	return &Service{storage: st}
}

// ListProfiles returns all profiles of the current user.
func (s *Service) ListProfiles(ctx context.Context) ([]ProfileDTO, error) {
	userID := userIDFromContext(ctx)

	if err := s.ensureOwnerProfile(ctx, userID); err != nil {
		return nil, err
	}

	profiles, err := s.storage.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		if p.OwnerUserID != userID {
			continue
		}
		dtos = append(dtos, toDTO(p))
	}

	return dtos, nil
}

// GetProfile returns a profile by ID.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	userID := userIDFromContext(ctx)

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if profile.OwnerUserID != userID {
		return nil, ErrNotFound
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// CreateProfile creates a new guest profile.
func (s *Service) CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileDTO, error) {
	userID := userIDFromContext(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	if req.Type != "guest" {
		return nil, ErrInvalidType
	}

	if req.WeightKg < 0 || req.WeightKg > 500 {
		return nil, ErrInvalidWeight
	}

	diet := strings.ToLower(strings.TrimSpace(req.DietaryPreference))
	if !validDietaryPreferences[diet] {
		return nil, ErrInvalidDiet
	}

	tz := strings.TrimSpace(req.TimeZone)
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, ErrInvalidTimeZone
		}
	}

	profile := &storage.Profile{
		OwnerUserID:       userID,
		Type:              req.Type,
		Name:              strings.TrimSpace(req.Name),
		WeightKg:          req.WeightKg,
		DietaryPreference: diet,
		TimeZone:          tz,
	}

	if err := s.storage.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// UpdateProfile applies the fields present in the request.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	userID := userIDFromContext(ctx)

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if profile.OwnerUserID != userID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		profile.Name = strings.TrimSpace(*req.Name)
	}

	if req.WeightKg != nil {
		if *req.WeightKg < 0 || *req.WeightKg > 500 {
			return nil, ErrInvalidWeight
		}
		profile.WeightKg = *req.WeightKg
	}

	if req.DietaryPreference != nil {
		diet := strings.ToLower(strings.TrimSpace(*req.DietaryPreference))
		if !validDietaryPreferences[diet] {
			return nil, ErrInvalidDiet
		}
		profile.DietaryPreference = diet
	}

	if req.IsPremium != nil {
		profile.IsPremium = *req.IsPremium
	}

	if req.TimeZone != nil {
		tz := strings.TrimSpace(*req.TimeZone)
		if tz != "" {
			if _, err := time.LoadLocation(tz); err != nil {
				return nil, ErrInvalidTimeZone
			}
		}
		profile.TimeZone = tz
	}

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// DeleteProfile removes a guest profile.
func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	userID := userIDFromContext(ctx)

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if profile.OwnerUserID != userID {
		return ErrNotFound
	}

	if profile.Type == "owner" {
		return ErrCannotDeleteOwner
	}

	return s.storage.DeleteProfile(ctx, id)
}

func toDTO(p storage.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                p.ID,
		OwnerUserID:       p.OwnerUserID,
		Type:              p.Type,
		Name:              p.Name,
		WeightKg:          p.WeightKg,
		DietaryPreference: p.DietaryPreference,
		IsPremium:         p.IsPremium,
		TimeZone:          p.TimeZone,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func userIDFromContext(ctx context.Context) string {
	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
}

func (s *Service) ensureOwnerProfile(ctx context.Context, userID string) error {
	profiles, err := s.storage.ListProfiles(ctx)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if p.OwnerUserID == userID && p.Type == "owner" {
			return nil
		}
	}
	profile := &storage.Profile{
		OwnerUserID: userID,
		Type:        "owner",
		Name:        "Yo",
	}
	return s.storage.CreateProfile(ctx, profile)
}
