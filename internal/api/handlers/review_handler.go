package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// ReviewRecorder records and lists reviews.
type ReviewRecorder interface {
	AddReview(ctx context.Context, input services.AddReviewInput) (*entities.Review, error)
	ListForTarget(ctx context.Context, targetID string) ([]*entities.Review, error)
}

// ReviewHandler handles review submission and listing.
type ReviewHandler struct {
	reviewService ReviewRecorder
}

func NewReviewHandler(reviewService ReviewRecorder) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type addReviewRequest struct {
	TargetID   string `json:"target_id"`
	ReviewerID string `json:"reviewer_id"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
}

// AddReview handles POST /api/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var body addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewService.AddReview(r.Context(), services.AddReviewInput{
		TargetID:   body.TargetID,
		ReviewerID: body.ReviewerID,
		Rating:     body.Rating,
		Text:       body.Text,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/reviews/{targetId}
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListForTarget(r.Context(), r.PathValue("targetId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
