package nutrition

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kaloria/coach-hub/internal/userctx"
)

// Handler handles HTTP requests for nutrition targets.
type Handler struct {
	service *Service
}

// NewHandler creates a new nutrition handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetTargets handles GET /v1/nutrition/targets?profile_id=
func (h *Handler) HandleGetTargets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := ownerFromContext(r)

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

	targets, isDefault, err := h.service.GetOrDefault(ctx, ownerUserID, profileID)
	if err != nil {
		if err.Error() == "profile_not_found" {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get nutrition targets")
		return
	}

	response := GetTargetsResponse{
		Targets:   targets,
		IsDefault: isDefault,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// HandleUpsertTargets handles PUT /v1/nutrition/targets
func (h *Handler) HandleUpsertTargets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerUserID := ownerFromContext(r)

	var req UpsertTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	targets, err := h.service.Upsert(ctx, ownerUserID, req)
	if err != nil {
		errMsg := err.Error()
		if errMsg == "profile_not_found" {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		if strings.HasPrefix(errMsg, "invalid_request:") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimSpace(strings.TrimPrefix(errMsg, "invalid_request:")))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to upsert nutrition targets")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(targets)
}

func ownerFromContext(r *http.Request) string {
	if userID, ok := userctx.GetUserID(r.Context()); ok && strings.TrimSpace(userID) != "" {
		return userID
	}
	return "default"
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
