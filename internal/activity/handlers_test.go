package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage/memory"
)

func setupHandler(t *testing.T) (*Handler, uuid.UUID) {
	t.Helper()

	store := memory.New()
	handler := NewHandler(NewService(store.GetActivityStorage(), store))

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile, got err=%v", err)
	}

	return handler, profiles[0].ID
}

func postEntry(t *testing.T, handler *Handler, req CreateEntryRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/v1/activity", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, httpReq)
	return w
}

func TestHandleCreateAndDaily(t *testing.T) {
	handler, profileID := setupHandler(t)

	w := postEntry(t, handler, CreateEntryRequest{
		ProfileID:    profileID,
		Name:         "Correr",
		CaloriesKcal: 320,
		Date:         "2026-03-10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	postEntry(t, handler, CreateEntryRequest{
		ProfileID:    profileID,
		Name:         "Caminata rápida",
		CaloriesKcal: 150,
		Date:         "2026-03-10",
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/activity/daily?profile_id="+profileID.String()+"&date=2026-03-10", nil)
	dailyW := httptest.NewRecorder()
	handler.HandleDaily(dailyW, req)

	if dailyW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", dailyW.Code)
	}

	var resp DailyResponse
	if err := json.NewDecoder(dailyW.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.TotalBurned != 470 {
		t.Errorf("expected total burned 470, got %v", resp.TotalBurned)
	}
}

func TestHandleCreateValidation(t *testing.T) {
	handler, profileID := setupHandler(t)

	w := postEntry(t, handler, CreateEntryRequest{
		ProfileID:    profileID,
		Name:         "Correr",
		CaloriesKcal: 0, // invalid
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleDailyUnknownProfile(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/activity/daily?profile_id="+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	handler.HandleDaily(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
