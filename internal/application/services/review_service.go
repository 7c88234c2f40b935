package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// AddReviewInput carries an incoming review submission.
type AddReviewInput struct {
	TargetID   string
	ReviewerID string
	Rating     int
	Text       string
}

// ReviewService records reviews against practitioners and facilities. A
// target id is resolved against the curated doctor store first, then the
// hospital store, then registered doctor users; the first match owns the
// review.
type ReviewService struct {
	doctorRepo   repositories.DoctorRepository
	hospitalRepo repositories.HospitalRepository
	userRepo     repositories.UserRepository
	reviewRepo   repositories.ReviewRepository
}

func NewReviewService(
	doctorRepo repositories.DoctorRepository,
	hospitalRepo repositories.HospitalRepository,
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
) *ReviewService {
	return &ReviewService{
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
	}
}

// AddReview validates and persists a review, attaching it to whichever store
// resolves the target id. Hospitals get the Hospital target variant; both
// curated and registered doctors get Doctor.
func (s *ReviewService) AddReview(ctx context.Context, input AddReviewInput) (*entities.Review, error) {
	if strings.TrimSpace(input.TargetID) == "" {
		return nil, apperrors.NewValidationError("target id is required")
	}
	if strings.TrimSpace(input.ReviewerID) == "" {
		return nil, apperrors.NewValidationError("reviewer id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	owner, variant, err := s.resolveTarget(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}

	review := &entities.Review{
		ID:            uuid.NewString(),
		TargetID:      input.TargetID,
		TargetVariant: variant,
		ReviewerID:    input.ReviewerID,
		Rating:        input.Rating,
		Text:          strings.TrimSpace(input.Text),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.reviewRepo.CreateForOwner(ctx, review, owner); err != nil {
		return nil, err
	}

	if reviewer, err := s.userRepo.GetByID(ctx, input.ReviewerID); err == nil {
		review.ReviewerName = reviewer.DisplayName()
	} else if !apperrors.IsNotFound(err) {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to load reviewer name")
	}

	return review, nil
}

// ListForTarget returns a target's reviews newest first, with reviewer names
// joined in.
func (s *ReviewService) ListForTarget(ctx context.Context, targetID string) ([]*entities.Review, error) {
	if strings.TrimSpace(targetID) == "" {
		return nil, apperrors.NewValidationError("target id is required")
	}
	return s.reviewRepo.ListByTarget(ctx, targetID)
}

// resolveTarget walks the stores in precedence order. Lookup errors other
// than not-found abort resolution rather than falling through, so a flaky
// store cannot silently misattribute a review.
func (s *ReviewService) resolveTarget(ctx context.Context, targetID string) (repositories.ReviewOwner, string, error) {
	if _, err := s.doctorRepo.GetByID(ctx, targetID); err == nil {
		return repositories.ReviewOwner{Store: repositories.OwnerStoreDoctor, ID: targetID}, entities.ReviewTargetDoctor, nil
	} else if !apperrors.IsNotFound(err) {
		return repositories.ReviewOwner{}, "", err
	}

	if _, err := s.hospitalRepo.GetByID(ctx, targetID); err == nil {
		return repositories.ReviewOwner{Store: repositories.OwnerStoreHospital, ID: targetID}, entities.ReviewTargetHospital, nil
	} else if !apperrors.IsNotFound(err) {
		return repositories.ReviewOwner{}, "", err
	}

	if _, err := s.userRepo.GetDoctorUser(ctx, targetID); err == nil {
		return repositories.ReviewOwner{Store: repositories.OwnerStoreUser, ID: targetID}, entities.ReviewTargetDoctor, nil
	} else if !apperrors.IsNotFound(err) {
		return repositories.ReviewOwner{}, "", err
	}

	return repositories.ReviewOwner{}, "", apperrors.NewNotFoundError("review target not found")
}
