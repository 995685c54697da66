package foods

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/storage/memory"
)

type fakeRewarder struct {
	calls int
	err   error
}

func (f *fakeRewarder) RecordFoodContribution(ctx context.Context, ownerUserID string) error {
	f.calls++
	return f.err
}

func setupHandler(t *testing.T) (*Handler, *fakeRewarder, uuid.UUID) {
	t.Helper()

	store := memory.New()
	rewards := &fakeRewarder{}
	service := NewService(
		store.GetFoodsStorage(),
		store.GetContributionsStorage(),
		store,
		nil, // local mode
		10,
		"image/jpeg,image/png",
		rewards,
		nil,
	)
	handler := NewHandler(service)

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile, got err=%v", err)
	}

	return handler, rewards, profiles[0].ID
}

func TestHandleCreateAndListFoods(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	reqBody := CreateUserFoodRequest{
		ProfileID:       profileID,
		Name:            "Ensalada de quinua",
		KcalPer100g:     120,
		ProteinGPer100g: 4.4,
		CarbsGPer100g:   21,
		FatGPer100g:     1.9,
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/v1/foods", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreateFood(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/foods?profile_id="+profileID.String(), nil)
	listW := httptest.NewRecorder()
	handler.HandleListFoods(listW, listReq)

	if listW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", listW.Code)
	}

	var resp ListFoodsResponse
	if err := json.NewDecoder(listW.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != 1 || resp.Items[0].Name != "Ensalada de quinua" {
		t.Errorf("unexpected list response: %+v", resp)
	}
}

func TestHandleListFoodsSearch(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	for _, name := range []string{"Arroz con pollo", "Tortilla de huevo"} {
		body, _ := json.Marshal(CreateUserFoodRequest{
			ProfileID:   profileID,
			Name:        name,
			KcalPer100g: 150,
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/foods", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.HandleCreateFood(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("setup: expected 201, got %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/foods?profile_id="+profileID.String()+"&q=pollo", nil)
	w := httptest.NewRecorder()
	handler.HandleListFoods(w, req)

	var resp ListFoodsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != 1 || resp.Items[0].Name != "Arroz con pollo" {
		t.Errorf("expected only 'Arroz con pollo', got %+v", resp)
	}
}

func TestHandleCreateFoodValidation(t *testing.T) {
	handler, _, profileID := setupHandler(t)

	body, _ := json.Marshal(CreateUserFoodRequest{
		ProfileID:   profileID,
		Name:        "",
		KcalPer100g: 100,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/foods", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreateFood(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleListGenericByTags(t *testing.T) {
	handler, _, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/foods/generic?tags=proteina", nil)
	w := httptest.NewRecorder()

	handler.HandleListGeneric(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListGenericResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total == 0 {
		t.Fatal("expected seeded protein foods")
	}
	for _, item := range resp.Items {
		found := false
		for _, tag := range item.Tags {
			if tag == "proteina" {
				found = true
			}
		}
		if !found {
			t.Errorf("item %q does not carry the requested tag", item.Name)
		}
	}
}

func TestHandleCreateContributionAwardsXP(t *testing.T) {
	handler, rewards, _ := setupHandler(t)

	body, _ := json.Marshal(CreateContributionRequest{
		Name:            "Causa limeña",
		Tags:            []string{"papa", "plato"},
		KcalPer100g:     180,
		ProteinGPer100g: 5,
		CarbsGPer100g:   25,
		FatGPer100g:     6,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreateContribution(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	if rewards.calls != 1 {
		t.Errorf("expected 1 reward call, got %d", rewards.calls)
	}
}

func TestHandleCreateContributionRewardFailureIsNonFatal(t *testing.T) {
	handler, rewards, _ := setupHandler(t)
	rewards.err = errors.New("stats table unavailable")

	body, _ := json.Marshal(CreateContributionRequest{
		Name:        "Lomo saltado",
		KcalPer100g: 200,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreateContribution(w, req)

	// The contribution must still be accepted.
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestContributionPhotoRoundtrip(t *testing.T) {
	handler, _, _ := setupHandler(t)

	body, _ := json.Marshal(CreateContributionRequest{
		Name:        "Ceviche",
		KcalPer100g: 120,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateContribution(w, req)

	var dto ContributionDTO
	if err := json.NewDecoder(w.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode contribution: %v", err)
	}

	// Upload photo via multipart form.
	photo := []byte("fake-jpeg-bytes")
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="ceviche.jpg"`},
		"Content-Type":        {"image/jpeg"},
	})
	part.Write(photo)
	writer.Close()

	upReq := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions/"+dto.ID.String()+"/photo", &buf)
	upReq.Header.Set("Content-Type", writer.FormDataContentType())
	upW := httptest.NewRecorder()

	handler.HandleUploadContributionPhoto(upW, upReq)

	if upW.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d. Body: %s", upW.Code, upW.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/foods/contributions/"+dto.ID.String()+"/photo", nil)
	getW := httptest.NewRecorder()

	handler.HandleGetContributionPhoto(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", getW.Code, getW.Body.String())
	}
	if getW.Header().Get("Content-Type") != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", getW.Header().Get("Content-Type"))
	}
	downloaded, _ := io.ReadAll(getW.Body)
	if !bytes.Equal(downloaded, photo) {
		t.Error("downloaded photo does not match uploaded bytes")
	}
}

func TestUploadPhotoRejectsUnsupportedMime(t *testing.T) {
	handler, _, _ := setupHandler(t)

	body, _ := json.Marshal(CreateContributionRequest{Name: "Aji de gallina", KcalPer100g: 160})
	req := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreateContribution(w, req)

	var dto ContributionDTO
	json.NewDecoder(w.Body).Decode(&dto)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="notes.txt"`},
		"Content-Type":        {"text/plain"},
	})
	part.Write([]byte("not an image"))
	writer.Close()

	upReq := httptest.NewRequest(http.MethodPost, "/v1/foods/contributions/"+dto.ID.String()+"/photo", &buf)
	upReq.Header.Set("Content-Type", writer.FormDataContentType())
	upW := httptest.NewRecorder()

	handler.HandleUploadContributionPhoto(upW, upReq)

	if upW.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected status 415, got %d", upW.Code)
	}
}
