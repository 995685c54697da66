package exercises

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaloria/coach-hub/internal/storage/memory"
)

func TestHandleList(t *testing.T) {
	store := memory.New()
	handler := NewHandler(NewService(store.GetExercisesStorage()))

	req := httptest.NewRequest(http.MethodGet, "/v1/exercises", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListExercisesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total == 0 {
		t.Fatal("expected seeded exercise catalog")
	}

	var foundWalk bool
	for _, e := range resp.Items {
		if e.METValue <= 0 {
			t.Errorf("exercise %q has non-positive MET", e.Name)
		}
		if e.Name == "Caminata rápida" {
			foundWalk = true
			if e.METValue != 4.3 {
				t.Errorf("expected MET 4.3 for brisk walking, got %v", e.METValue)
			}
		}
	}
	if !foundWalk {
		t.Error("expected 'Caminata rápida' in the catalog")
	}
}
