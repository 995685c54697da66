package gamification

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kaloria/coach-hub/internal/userctx"
)

// Handler handles HTTP requests for gamification state.
type Handler struct {
	service *Service
}

// NewHandler creates a new gamification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetStats handles GET /v1/gamification/stats
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context(), ownerFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleListAchievements handles GET /v1/gamification/achievements
func (h *Handler) HandleListAchievements(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAchievements(r.Context(), ownerFromContext(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list achievements")
		return
	}

	writeJSON(w, http.StatusOK, ListAchievementsResponse{Items: items, Total: len(items)})
}

func ownerFromContext(r *http.Request) string {
	if userID, ok := userctx.GetUserID(r.Context()); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
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
