package foodlog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage/memory"
)

type fakeDailyRewarder struct {
	calls []string
}

func (f *fakeDailyRewarder) RecordDailyLog(ctx context.Context, ownerUserID string, date string) error {
	f.calls = append(f.calls, date)
	return nil
}

func setupHandler(t *testing.T) (*Handler, *fakeDailyRewarder, uuid.UUID) {
	t.Helper()

	store := memory.New()
	rewards := &fakeDailyRewarder{}
	service := NewService(store.GetFoodLogStorage(), store, rewards, nil)
	handler := NewHandler(service)

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile, got err=%v", err)
	}

	return handler, rewards, profiles[0].ID
}

func postLog(t *testing.T, handler *Handler, req CreateLogRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/v1/logs", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateLog(w, httpReq)
	return w
}

func TestHandleCreateLog(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	w := postLog(t, handler, CreateLogRequest{
		ProfileID: profileID,
		FoodName:  "Pechuga de pollo",
		Grams:     150,
		Kcal:      247.5,
		ProteinG:  46.5,
		FatG:      5.4,
		Date:      "2026-03-10",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var dto LogDTO
	if err := json.NewDecoder(w.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if dto.FoodName != "Pechuga de pollo" || dto.Date != "2026-03-10" {
		t.Errorf("unexpected log: %+v", dto)
	}
}

func TestHandleCreateLogValidation(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	w := postLog(t, handler, CreateLogRequest{
		ProfileID: profileID,
		FoodName:  "Pechuga de pollo",
		Grams:     0, // invalid
		Kcal:      100,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestDailyRewardFiresOnlyOnFirstLog(t *testing.T) {
	handler, rewards, profileID := setupHandler(t)

	first := postLog(t, handler, CreateLogRequest{
		ProfileID: profileID,
		FoodName:  "Avena",
		Grams:     60,
		Kcal:      233,
		Date:      "2026-03-10",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := postLog(t, handler, CreateLogRequest{
		ProfileID: profileID,
		FoodName:  "Plátano",
		Grams:     120,
		Kcal:      107,
		Date:      "2026-03-10",
	})
	if second.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", second.Code)
	}

	if len(rewards.calls) != 1 || rewards.calls[0] != "2026-03-10" {
		t.Errorf("expected exactly one reward for 2026-03-10, got %v", rewards.calls)
	}

	// A different date fires again.
	third := postLog(t, handler, CreateLogRequest{
		ProfileID: profileID,
		FoodName:  "Avena",
		Grams:     60,
		Kcal:      233,
		Date:      "2026-03-11",
	})
	if third.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", third.Code)
	}
	if len(rewards.calls) != 2 {
		t.Errorf("expected a second reward for the new date, got %v", rewards.calls)
	}
}

func TestHandleDailyTotals(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Avena", Grams: 60, Kcal: 233, ProteinG: 10.1, CarbsG: 39.7, FatG: 4.1, Date: "2026-03-10",
	})
	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Huevo", Grams: 100, Kcal: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11, Date: "2026-03-10",
	})
	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Atún", Grams: 100, Kcal: 116, ProteinG: 26, Date: "2026-03-11",
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/logs/daily?profile_id="+profileID.String()+"&date=2026-03-10", nil)
	w := httptest.NewRecorder()
	handler.HandleDaily(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp DailyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Totals.Kcal != 388 {
		t.Errorf("expected totals kcal 388, got %v", resp.Totals.Kcal)
	}
	if resp.Totals.ProteinG < 23.09 || resp.Totals.ProteinG > 23.11 {
		t.Errorf("expected totals protein ~23.1, got %v", resp.Totals.ProteinG)
	}
}

func TestHandleHistoryAggregation(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	// Same food twice at different portions: per-100g values are averaged.
	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Pechuga de pollo", Grams: 100, Kcal: 165, ProteinG: 31, Date: yesterday,
	})
	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Pechuga de pollo", Grams: 200, Kcal: 330, ProteinG: 62, Date: today,
	})
	postLog(t, handler, CreateLogRequest{
		ProfileID: profileID, FoodName: "Arroz blanco cocido", Grams: 160, Kcal: 208, CarbsG: 44.8, Date: yesterday,
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/logs/history?profile_id="+profileID.String()+"&days=30", nil)
	w := httptest.NewRecorder()
	handler.HandleHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 aggregated items, got %d", len(resp.Items))
	}

	// Most recent first.
	if resp.Items[0].FoodName != "Pechuga de pollo" {
		t.Fatalf("expected chicken first, got %s", resp.Items[0].FoodName)
	}

	chicken := resp.Items[0]
	if chicken.TimesEaten != 2 {
		t.Errorf("expected times_eaten 2, got %d", chicken.TimesEaten)
	}
	if chicken.LastEatenDate != today {
		t.Errorf("expected last_eaten_date %s, got %s", today, chicken.LastEatenDate)
	}
	// Both portions are 165 kcal / 31 g protein per 100 g.
	if chicken.KcalPer100g < 164.9 || chicken.KcalPer100g > 165.1 {
		t.Errorf("expected ~165 kcal per 100g, got %v", chicken.KcalPer100g)
	}
	if chicken.ProteinGPer100g < 30.9 || chicken.ProteinGPer100g > 31.1 {
		t.Errorf("expected ~31 g protein per 100g, got %v", chicken.ProteinGPer100g)
	}
}

func TestHandleDailyUnknownProfile(t *testing.T) {
	handler, _, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/logs/daily?profile_id="+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	handler.HandleDaily(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
