package foodlog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/userctx"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStorageAdapter gives access to profile ownership checks.
type ProfileStorageAdapter interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// DailyRewarder is the gamification hook fired on the first log of a day.
type DailyRewarder interface {
	RecordDailyLog(ctx context.Context, ownerUserID string, date string) error
}

// Service handles food logging and history aggregation.
type Service struct {
	logs     storage.FoodLogStorage
	profiles ProfileStorageAdapter
	rewards  DailyRewarder
	logger   *zap.Logger
}

// NewService creates a new food log service.
func NewService(logs storage.FoodLogStorage, profiles ProfileStorageAdapter, rewards DailyRewarder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logs:     logs,
		profiles: profiles,
		rewards:  rewards,
		logger:   logger,
	}
}

// CreateLog records one eating event and fires the daily-log reward
// when it is the first log of its date.
func (s *Service) CreateLog(ctx context.Context, req CreateLogRequest) (*LogDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.ensureProfileAccess(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	ownerUserID := ownerFromContext(ctx)

	date := req.Date
	if date == "" {
		date = todayForProfile(profile)
	}

	// Count before inserting so we know whether this is the day's first log.
	existing, err := s.logs.CountLogsForDate(ctx, ownerUserID, req.ProfileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	log := &storage.FoodLog{
		OwnerUserID: ownerUserID,
		ProfileID:   req.ProfileID,
		FoodName:    strings.TrimSpace(req.FoodName),
		Grams:       req.Grams,
		Kcal:        req.Kcal,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		Date:        date,
	}

	if err := s.logs.CreateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	// The log is already saved; a gamification failure must not undo it.
	if existing == 0 && s.rewards != nil {
		if err := s.rewards.RecordDailyLog(ctx, ownerUserID, date); err != nil {
			s.logger.Warn("daily log reward failed",
				zap.String("owner_user_id", ownerUserID),
				zap.String("date", date),
				zap.Error(err))
		}
	}

	dto := toDTO(*log)
	return &dto, nil
}

// Daily returns the logs of a single date with summed totals.
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

	logs, err := s.logs.ListLogsForDate(ctx, ownerFromContext(ctx), profileID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	resp := &DailyResponse{
		Date:  date,
		Items: make([]LogDTO, len(logs)),
	}
	for i, l := range logs {
		resp.Items[i] = toDTO(l)
		resp.Totals.Kcal += l.Kcal
		resp.Totals.ProteinG += l.ProteinG
		resp.Totals.CarbsG += l.CarbsG
		resp.Totals.FatG += l.FatG
	}

	return resp, nil
}

// History aggregates the last N days of logs by food name.
func (s *Service) History(ctx context.Context, profileID uuid.UUID, days int) (*HistoryResponse, error) {
	profile, err := s.ensureProfileAccess(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if days <= 0 || days > 90 {
		days = 30
	}

	today := todayForProfile(profile)
	from, _ := time.Parse("2006-01-02", today)
	fromDate := from.AddDate(0, 0, -days).Format("2006-01-02")

	logs, err := s.logs.ListLogsSince(ctx, ownerFromContext(ctx), profileID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	type agg struct {
		times       int
		lastDate    string
		sumKcal100  float64
		sumProt100  float64
		sumCarbs100 float64
		sumFat100   float64
	}

	byName := make(map[string]*agg)
	order := []string{}
	for _, l := range logs {
		if l.Grams <= 0 {
			continue
		}
		a, ok := byName[l.FoodName]
		if !ok {
			a = &agg{}
			byName[l.FoodName] = a
			order = append(order, l.FoodName)
		}
		a.times++
		if l.Date > a.lastDate {
			a.lastDate = l.Date
		}
		factor := 100 / l.Grams
		a.sumKcal100 += l.Kcal * factor
		a.sumProt100 += l.ProteinG * factor
		a.sumCarbs100 += l.CarbsG * factor
		a.sumFat100 += l.FatG * factor
	}

	items := make([]HistoryItem, 0, len(byName))
	for _, name := range order {
		a := byName[name]
		n := float64(a.times)
		items = append(items, HistoryItem{
			FoodName:        name,
			TimesEaten:      a.times,
			LastEatenDate:   a.lastDate,
			KcalPer100g:     a.sumKcal100 / n,
			ProteinGPer100g: a.sumProt100 / n,
			CarbsGPer100g:   a.sumCarbs100 / n,
			FatGPer100g:     a.sumFat100 / n,
		})
	}

	// Most recent first, frequency breaks ties.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].LastEatenDate != items[j].LastEatenDate {
			return items[i].LastEatenDate > items[j].LastEatenDate
		}
		return items[i].TimesEaten > items[j].TimesEaten
	})

	return &HistoryResponse{Days: days, Items: items}, nil
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

// todayForProfile resolves "today" in the profile's time zone, UTC when unset.
func todayForProfile(profile *storage.Profile) string {
	loc := time.UTC
	if profile.TimeZone != "" {
		if l, err := time.LoadLocation(profile.TimeZone); err == nil {
			loc = l
		}
	}
	return time.Now().In(loc).Format("2006-01-02")
}

func toDTO(l storage.FoodLog) LogDTO {
	return LogDTO{
		ID:        l.ID,
		ProfileID: l.ProfileID,
		FoodName:  l.FoodName,
		Grams:     l.Grams,
		Kcal:      l.Kcal,
		ProteinG:  l.ProteinG,
		CarbsG:    l.CarbsG,
		FatG:      l.FatG,
		Date:      l.Date,
		LoggedAt:  l.LoggedAt,
	}
}

func ownerFromContext(ctx context.Context) string {
	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
}
