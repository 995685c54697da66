package coach

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/storage/memory"
)

func setupCoach(t *testing.T) (*Handler, *memory.MemoryStorage, uuid.UUID) {
	t.Helper()

	store := memory.New()
	engine := NewEngine(
		NewStorageFoodCatalog(store.GetFoodsStorage(), store.GetFoodLogStorage()),
		NewStorageExerciseCatalog(store.GetExercisesStorage()),
		EngineConfig{Rand: rand.New(rand.NewSource(1))},
	)
	service := NewService(
		store,
		store.GetNutritionTargetsStorage(),
		store.GetFoodLogStorage(),
		store.GetActivityStorage(),
		engine,
	)
	handler := NewHandler(service)

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile, got err=%v", err)
	}

	// The seeded profile starts unconfigured; give it a weight and goals
	// so the engine has something to reason about.
	profile := profiles[0]
	profile.WeightKg = 70
	if err := store.UpdateProfile(context.Background(), &profile); err != nil {
		t.Fatal(err)
	}
	_, err = store.GetNutritionTargetsStorage().Upsert(
		context.Background(), "default", profile.ID,
		storage.NutritionTargetUpsert{CaloriesKcal: 2000, ProteinG: 120, CarbsG: 250, FatG: 70},
	)
	if err != nil {
		t.Fatal(err)
	}
	return handler, store, profile.ID
}

type resultEnvelope struct {
	Status         string          `json:"status"`
	Kind           string          `json:"kind"`
	Recommendation json.RawMessage `json:"recommendation"`
}

func getRecommendation(t *testing.T, handler *Handler, url string) (*httptest.ResponseRecorder, resultEnvelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	handler.HandleRecommendation(w, req)

	var env resultEnvelope
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return w, env
}

func TestHandleRecommendationEmptyDay(t *testing.T) {
	handler, _, profileID := setupCoach(t)

	w, env := getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+profileID.String()+"&hour=8")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	if env.Status != StatusOK || env.Kind != "first_meal" {
		t.Fatalf("expected a first_meal result, got %+v", env)
	}

	var rec FirstMealRecommendation
	if err := json.Unmarshal(env.Recommendation, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Slot != SlotDesayuno {
		t.Errorf("expected DESAYUNO at hour 8, got %s", rec.Slot)
	}
	// A 2000 kcal target against the seeded catalog picks chicken.
	if rec.FoodName != "Pechuga de pollo" || rec.Grams != 303 {
		t.Errorf("unexpected pick: %s %v g", rec.FoodName, rec.Grams)
	}
}

func TestHandleRecommendationOnTrack(t *testing.T) {
	handler, store, profileID := setupCoach(t)

	today := time.Now().UTC().Format("2006-01-02")
	err := store.GetFoodLogStorage().CreateLog(context.Background(), &storage.FoodLog{
		OwnerUserID: "default",
		ProfileID:   profileID,
		FoodName:    "Almuerzo completo",
		Grams:       800,
		Kcal:        1995,
		ProteinG:    118,
		CarbsG:      248,
		FatG:        69,
		Date:        today,
	})
	if err != nil {
		t.Fatal(err)
	}

	w, env := getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+profileID.String()+"&hour=20")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if env.Kind != "on_track" {
		t.Errorf("expected on_track within tolerance, got %s", env.Kind)
	}
}

func TestHandleRecommendationSurplus(t *testing.T) {
	handler, store, profileID := setupCoach(t)

	today := time.Now().UTC().Format("2006-01-02")
	err := store.GetFoodLogStorage().CreateLog(context.Background(), &storage.FoodLog{
		OwnerUserID: "default",
		ProfileID:   profileID,
		FoodName:    "Buffet",
		Grams:       1200,
		Kcal:        2400,
		ProteinG:    110,
		CarbsG:      260,
		FatG:        80,
		Date:        today,
	})
	if err != nil {
		t.Fatal(err)
	}

	w, env := getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+profileID.String()+"&hour=17")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if env.Kind != "exercise" {
		t.Fatalf("expected exercise for a 400 kcal surplus, got %s", env.Kind)
	}

	var rec ExerciseRecommendation
	if err := json.Unmarshal(env.Recommendation, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.SurplusKcal != 400 {
		t.Errorf("expected 400 kcal surplus, got %v", rec.SurplusKcal)
	}
	if len(rec.Options) == 0 || len(rec.Options) > 2 {
		t.Errorf("expected 1-2 exercise options, got %d", len(rec.Options))
	}
}

func TestHandleRecommendationUnconfiguredProfile(t *testing.T) {
	handler, store, _ := setupCoach(t)

	// A second profile without weight or targets.
	kid := &storage.Profile{
		OwnerUserID: "default",
		Type:        "family",
		Name:        "Peque",
	}
	if err := store.CreateProfile(context.Background(), kid); err != nil {
		t.Fatal(err)
	}

	w, env := getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+kid.ID.String()+"&hour=8")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if env.Status != StatusNotConfigured {
		t.Errorf("expected not_configured, got %s", env.Status)
	}
	if env.Kind != KindNone || string(env.Recommendation) != "null" {
		t.Errorf("not_configured must carry no recommendation: %+v", env)
	}
}

func TestHandleRecommendationUnknownProfile(t *testing.T) {
	handler, _, _ := setupCoach(t)

	w, _ := getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleRecommendationValidation(t *testing.T) {
	handler, _, profileID := setupCoach(t)

	w, _ := getRecommendation(t, handler, "/v1/coach/recommendation")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing profile_id: expected 400, got %d", w.Code)
	}

	w, _ = getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id=not-a-uuid")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad profile_id: expected 400, got %d", w.Code)
	}

	w, _ = getRecommendation(t, handler,
		"/v1/coach/recommendation?profile_id="+profileID.String()+"&hour=24")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad hour: expected 400, got %d", w.Code)
	}
}
