package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/userctx"
)

// Service resolves a profile's current day into an engine Input and
// evaluates it.
type Service struct {
	profiles storage.Storage
	targets  storage.NutritionTargetsStorage
	logs     storage.FoodLogStorage
	activity storage.ActivityStorage
	engine   *Engine
}

func NewService(
	profiles storage.Storage,
	targets storage.NutritionTargetsStorage,
	logs storage.FoodLogStorage,
	activity storage.ActivityStorage,
	engine *Engine,
) *Service {
	return &Service{
		profiles: profiles,
		targets:  targets,
		logs:     logs,
		activity: activity,
		engine:   engine,
	}
}

// Recommend evaluates the profile's day. hourOverride, when non-nil,
// replaces the profile's local hour.
func (s *Service) Recommend(ctx context.Context, profileID uuid.UUID, hourOverride *int) (*Result, error) {
	owner := ownerFromContext(ctx)

	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil || profile.OwnerUserID != owner {
		return nil, ErrProfileNotFound
	}

	loc := time.UTC
	if profile.TimeZone != "" {
		if l, err := time.LoadLocation(profile.TimeZone); err == nil {
			loc = l
		}
	}
	now := time.Now().In(loc)
	date := now.Format("2006-01-02")
	hour := now.Hour()
	if hourOverride != nil {
		hour = *hourOverride
	}

	// Missing targets stay zero: the engine answers not-configured
	// instead of guessing a goal for the user.
	var target Target
	if t, err := s.targets.Get(ctx, owner, profileID); err != nil {
		return nil, fmt.Errorf("failed to load targets: %w", err)
	} else if t != nil {
		target = Target{
			CaloriesKcal: t.CaloriesKcal,
			ProteinG:     t.ProteinG,
			CarbsG:       t.CarbsG,
			FatG:         t.FatG,
		}
	}

	logs, err := s.logs.ListLogsForDate(ctx, owner, profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	var consumed Totals
	for _, l := range logs {
		consumed.Kcal += l.Kcal
		consumed.ProteinG += l.ProteinG
		consumed.CarbsG += l.CarbsG
		consumed.FatG += l.FatG
	}

	burned, err := s.activity.GetDailyBurned(ctx, owner, profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load burned calories: %w", err)
	}

	scope := Scope{OwnerUserID: owner, ProfileID: profileID}
	input := Input{
		Profile:    *profile,
		Target:     target,
		Consumed:   consumed,
		BurnedKcal: burned,
		Hour:       hour,
		Date:       date,
	}
	return s.engine.Evaluate(ctx, scope, input)
}

func ownerFromContext(ctx context.Context) string {
	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
}
