package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// SpecialistSearcher answers specialty searches.
type SpecialistSearcher interface {
	Search(ctx context.Context, req services.SearchRequest) ([]*entities.PractitionerRecord, error)
}

// SearchHandler handles specialist search requests.
type SearchHandler struct {
	searchService SpecialistSearcher
}

func NewSearchHandler(searchService SpecialistSearcher) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

type searchRequest struct {
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`
	RadiusMeters float64 `json:"radius"`
}

// Search handles POST /api/search/{specialty}
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	specialty := r.PathValue("specialty")
	if specialty == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := h.searchService.Search(r.Context(), services.SearchRequest{
		Specialty:    specialty,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		RadiusMeters: body.RadiusMeters,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": results,
	})
}
