package coach

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for coach recommendations.
type Handler struct {
	service *Service
}

// NewHandler creates a new coach handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRecommendation handles GET /v1/coach/recommendation?profile_id=&hour=
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	profileIDStr := r.URL.Query().Get("profile_id")
	if profileIDStr == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id is required")
		return
	}
	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid profile_id format")
		return
	}

	var hourOverride *int
	if hourStr := r.URL.Query().Get("hour"); hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil || hour < 0 || hour > 23 {
			writeError(w, http.StatusBadRequest, "invalid_request", "hour must be between 0 and 23")
			return
		}
		hourOverride = &hour
	}

	result, err := h.service.Recommend(r.Context(), profileID, hourOverride)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
		case errors.Is(err, ErrCatalogUnavailable):
			writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Food or exercise catalog is unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate recommendation")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
