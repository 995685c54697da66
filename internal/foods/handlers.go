package foods

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for foods and contributions.
type Handler struct {
	service *Service
}

// NewHandler creates a new foods handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleListFoods handles GET /v1/foods?profile_id=&q=&limit=
func (h *Handler) HandleListFoods(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query().Get("q")
	limit := parseIntQuery(r, "limit", 100)

	items, err := h.service.ListUserFoods(r.Context(), profileID, query, limit)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list foods")
		return
	}

	writeJSON(w, http.StatusOK, ListFoodsResponse{Items: items, Total: len(items)})
}

// HandleCreateFood handles POST /v1/foods
func (h *Handler) HandleCreateFood(w http.ResponseWriter, r *http.Request) {
	var req CreateUserFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	dto, err := h.service.CreateUserFood(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
		case strings.HasPrefix(err.Error(), "validation failed: "):
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
		case strings.Contains(err.Error(), "already exists"):
			writeError(w, http.StatusConflict, "duplicate_name", "Food with this name already exists")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create food")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// HandleListGeneric handles GET /v1/foods/generic?tags=a,b&limit=
func (h *Handler) HandleListGeneric(w http.ResponseWriter, r *http.Request) {
	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	limit := parseIntQuery(r, "limit", 100)

	items, err := h.service.ListGeneric(r.Context(), tags, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list generic foods")
		return
	}

	writeJSON(w, http.StatusOK, ListGenericResponse{Items: items, Total: len(items)})
}

// HandleCreateContribution handles POST /v1/foods/contributions
func (h *Handler) HandleCreateContribution(w http.ResponseWriter, r *http.Request) {
	var req CreateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	dto, err := h.service.CreateContribution(r.Context(), req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create contribution")
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// HandleListContributions handles GET /v1/foods/contributions?limit=
func (h *Handler) HandleListContributions(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)

	items, err := h.service.ListContributions(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list contributions")
		return
	}

	writeJSON(w, http.StatusOK, ListContributionsResponse{Items: items, Total: len(items)})
}

// HandleUploadContributionPhoto handles POST /v1/foods/contributions/{id}/photo
func (h *Handler) HandleUploadContributionPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDFromPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid contribution id")
		return
	}

	// Parse multipart form (max 32 MB in memory)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "file field is required")
		return
	}

	if err := h.service.UploadContributionPhoto(r.Context(), id, fileHeader); err != nil {
		switch {
		case errors.Is(err, ErrContributionNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Contribution not found")
		case errors.Is(err, ErrFileTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds upload limit")
		case errors.Is(err, ErrUnsupportedMime):
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_mime", "Unsupported content type")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to upload photo")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetContributionPhoto handles GET /v1/foods/contributions/{id}/photo
func (h *Handler) HandleGetContributionPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDFromPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid contribution id")
		return
	}

	data, contentType, err := h.service.GetContributionPhoto(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrContributionNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Contribution not found")
		case errors.Is(err, ErrPhotoNotFound):
			writeError(w, http.StatusNotFound, "photo_not_found", "Photo not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get photo")
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// contributionIDFromPath parses /v1/foods/contributions/{id}/photo
func contributionIDFromPath(path string) (uuid.UUID, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 4 {
		return uuid.Nil, errors.New("invalid path")
	}
	return uuid.Parse(parts[3])
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
