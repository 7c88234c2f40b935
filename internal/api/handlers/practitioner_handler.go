package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// Directory resolves practitioner profiles and the specialty catalog.
type Directory interface {
	GetPractitioner(ctx context.Context, id string) (*services.PractitionerDetail, error)
	Categories(ctx context.Context) ([]string, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]*entities.PractitionerRecord, error)
}

// PractitionerHandler serves practitioner profiles, specialty categories and
// typeahead suggestions.
type PractitionerHandler struct {
	directoryService Directory
}

func NewPractitionerHandler(directoryService Directory) *PractitionerHandler {
	return &PractitionerHandler{directoryService: directoryService}
}

// GetPractitioner handles GET /api/practitioners/{id}
func (h *PractitionerHandler) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	detail, err := h.directoryService.GetPractitioner(r.Context(), r.PathValue("id"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// GetCategories handles GET /api/categories
func (h *PractitionerHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.directoryService.Categories(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// Suggest handles GET /api/practitioners/suggest?q=...&limit=...
func (h *PractitionerHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	suggestions, err := h.directoryService.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
