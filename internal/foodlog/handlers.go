package foodlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for food logs.
type Handler struct {
	service *Service
}

// NewHandler creates a new food log handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCreateLog handles POST /v1/logs
func (h *Handler) HandleCreateLog(w http.ResponseWriter, r *http.Request) {
	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	dto, err := h.service.CreateLog(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create log")
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// HandleDaily handles GET /v1/logs/daily?profile_id=&date=
func (h *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")

	resp, err := h.service.Daily(r.Context(), profileID, date)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get daily logs")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory handles GET /v1/logs/history?profile_id=&days=
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDParam(w, r)
	if !ok {
		return
	}

	days := parseIntQuery(r, "days", 30)

	resp, err := h.service.History(r.Context(), profileID, days)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get history")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
	case strings.HasPrefix(err.Error(), "validation failed: "):
		writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}

func profileIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	profileIDStr := r.URL.Query().Get("profile_id")
	if profileIDStr == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id is required")
		return uuid.Nil, false
	}

	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid profile_id format")
		return uuid.Nil, false
	}

	return profileID, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}

	var val int
	if _, err := fmt.Sscanf(valStr, "%d", &val); err != nil {
		return defaultValue
	}

	return val
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response in the standard format.
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
