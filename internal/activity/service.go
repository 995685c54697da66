package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/userctx"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStorageAdapter gives access to profile ownership checks.
type ProfileStorageAdapter interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// Service handles recorded exercise activity.
type Service struct {
	activity storage.ActivityStorage
	profiles ProfileStorageAdapter
}

// NewService creates a new activity service.
func NewService(activity storage.ActivityStorage, profiles ProfileStorageAdapter) *Service {
	return &Service{activity: activity, profiles: profiles}
}

// CreateEntry records calories burned from one bout of exercise.
func (s *Service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.ensureProfileAccess(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = todayForProfile(profile)
	}

	entry := &storage.ActivityEntry{
		OwnerUserID:  ownerFromContext(ctx),
		ProfileID:    req.ProfileID,
		Name:         strings.TrimSpace(req.Name),
		CaloriesKcal: req.CaloriesKcal,
		Date:         date,
	}

	if err := s.activity.AddActivity(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}

	dto := toDTO(*entry)
	return &dto, nil
}

// Daily returns the activity entries of a date with the burned total.
func (s *Service) Daily(ctx context.Context, profileID uuid.UUID, date string) (*DailyResponse, error) {
	profile, err := s.ensureProfileAccess(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = todayForProfile(profile)
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("validation failed: date must be YYYY-MM-DD")
	}

	entries, err := s.activity.ListActivitiesForDate(ctx, ownerFromContext(ctx), profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	resp := &DailyResponse{
		Date:  date,
		Items: make([]EntryDTO, len(entries)),
	}
	for i, e := range entries {
		resp.Items[i] = toDTO(e)
		resp.TotalBurned += e.CaloriesKcal
	}

	return resp, nil
}

func (s *Service) ensureProfileAccess(ctx context.Context, profileID uuid.UUID) (*storage.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if profile.OwnerUserID != ownerFromContext(ctx) {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func todayForProfile(profile *storage.Profile) string {
	loc := time.UTC
	if profile.TimeZone != "" {
		if l, err := time.LoadLocation(profile.TimeZone); err == nil {
			loc = l
		}
	}
	return time.Now().In(loc).Format("2006-01-02")
}

func toDTO(e storage.ActivityEntry) EntryDTO {
	return EntryDTO{
		ID:           e.ID,
		ProfileID:    e.ProfileID,
		Name:         e.Name,
		CaloriesKcal: e.CaloriesKcal,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

func ownerFromContext(ctx context.Context) string {
	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
}
