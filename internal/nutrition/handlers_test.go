package nutrition

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
	service := NewService(store, store.GetNutritionTargetsStorage())
	handler := NewHandler(service)

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile, got err=%v", err)
	}

	return handler, profiles[0].ID
}

func TestHandleGetTargetsDefaults(t *testing.T) {
	handler, profileID := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets?profile_id="+profileID.String(), nil)
	w := httptest.NewRecorder()

	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp GetTargetsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.IsDefault {
		t.Error("expected is_default true when no targets set")
	}
	if resp.Targets.CaloriesKcal != 2000 {
		t.Errorf("expected default 2000 kcal, got %v", resp.Targets.CaloriesKcal)
	}
}

func TestHandleGetTargetsMissingProfileID(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets", nil)
	w := httptest.NewRecorder()

	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleUpsertTargets(t *testing.T) {
	handler, profileID := setupHandler(t)

	reqBody := UpsertTargetsRequest{
		ProfileID:    profileID,
		CaloriesKcal: 2400,
		ProteinG:     150,
		CarbsG:       280,
		FatG:         80,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPut, "/v1/nutrition/targets", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleUpsertTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var dto TargetsDTO
	if err := json.NewDecoder(w.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if dto.CaloriesKcal != 2400 || dto.ProteinG != 150 {
		t.Errorf("unexpected targets: %+v", dto)
	}

	// GET now returns the stored values.
	getReq := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets?profile_id="+profileID.String(), nil)
	getW := httptest.NewRecorder()
	handler.HandleGetTargets(getW, getReq)

	var resp GetTargetsResponse
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsDefault {
		t.Error("expected is_default false after upsert")
	}
	if resp.Targets.CaloriesKcal != 2400 {
		t.Errorf("expected 2400 kcal, got %v", resp.Targets.CaloriesKcal)
	}
}

func TestHandleUpsertTargetsValidation(t *testing.T) {
	handler, profileID := setupHandler(t)

	reqBody := UpsertTargetsRequest{
		ProfileID:    profileID,
		CaloriesKcal: 200, // below minimum
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPut, "/v1/nutrition/targets", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleUpsertTargets(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestHandleUpsertTargetsUnknownProfile(t *testing.T) {
	handler, _ := setupHandler(t)

	reqBody := UpsertTargetsRequest{
		ProfileID:    uuid.New(),
		CaloriesKcal: 2000,
		ProteinG:     100,
		CarbsG:       200,
		FatG:         60,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPut, "/v1/nutrition/targets", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleUpsertTargets(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d. Body: %s", w.Code, w.Body.String())
	}
}
