package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// AddDoctorInput carries a hospital's request to register a doctor onto its
// roster.
type AddDoctorInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Specialty string
}

// HospitalStats summarizes a hospital account's roster for its dashboard.
type HospitalStats struct {
	TotalDoctors      int     `json:"total_doctors"`
	CompletedProfiles int     `json:"completed_profiles"`
	TotalReviews      int     `json:"total_reviews"`
	AverageRating     float64 `json:"average_rating"`
}

// DoctorStats summarizes a doctor user's own reviews.
type DoctorStats struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

// DashboardService backs the hospital and doctor dashboard surfaces: roster
// management and aggregate stats.
type DashboardService struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
}

func NewDashboardService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository) *DashboardService {
	return &DashboardService{userRepo: userRepo, reviewRepo: reviewRepo}
}

// AddDoctor creates a doctor account and attaches it to the hospital's
// roster. The new account starts with an incomplete profile; the doctor
// fills in the professional fields on first login.
func (s *DashboardService) AddDoctor(ctx context.Context, hospitalUserID string, input AddDoctorInput) (*entities.User, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("first name and email are required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	hospital, err := s.userRepo.GetByID(ctx, hospitalUserID)
	if err != nil {
		return nil, err
	}
	if hospital.UserType != entities.UserTypeHospital {
		return nil, apperrors.NewValidationError("account is not a hospital")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	doctor := &entities.User{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  string(hashed),
		UserType:  entities.UserTypeDoctor,
		Specialty: strings.TrimSpace(input.Specialty),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddToRoster(ctx, hospitalUserID, doctor.ID); err != nil {
		return nil, err
	}

	doctor.Password = ""
	return doctor, nil
}

// RemoveDoctor detaches a doctor from the hospital's roster. The doctor
// account and its reviews stay intact.
func (s *DashboardService) RemoveDoctor(ctx context.Context, hospitalUserID, doctorUserID string) error {
	if strings.TrimSpace(doctorUserID) == "" {
		return apperrors.NewValidationError("doctor id is required")
	}
	return s.userRepo.RemoveFromRoster(ctx, hospitalUserID, doctorUserID)
}

// ListRoster returns the hospital's doctors with passwords stripped.
func (s *DashboardService) ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error) {
	roster, err := s.userRepo.ListRoster(ctx, hospitalUserID)
	if err != nil {
		return nil, err
	}
	for _, doctor := range roster {
		doctor.Password = ""
	}
	return roster, nil
}

// HospitalStats aggregates roster size, profile completion and the combined
// review stats across every doctor on the roster.
func (s *DashboardService) HospitalStats(ctx context.Context, hospitalUserID string) (*HospitalStats, error) {
	roster, err := s.userRepo.ListRoster(ctx, hospitalUserID)
	if err != nil {
		return nil, err
	}

	stats := &HospitalStats{TotalDoctors: len(roster)}
	doctorIDs := make([]string, 0, len(roster))
	for _, doctor := range roster {
		doctorIDs = append(doctorIDs, doctor.ID)
		if doctor.ProfileCompleted {
			stats.CompletedProfiles++
		}
	}

	if len(doctorIDs) > 0 {
		summary, err := s.reviewRepo.SummaryByTargets(ctx, doctorIDs, entities.ReviewTargetDoctor)
		if err != nil {
			return nil, err
		}
		stats.TotalReviews = summary.ReviewCount
		stats.AverageRating = summary.AverageRating
	}

	return stats, nil
}

// DoctorStats aggregates a doctor user's own review refs.
func (s *DashboardService) DoctorStats(ctx context.Context, doctorUserID string) (*DoctorStats, error) {
	doctor, err := s.userRepo.GetDoctorUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviewRepo.Summary(ctx, doctor.DoctorReviewIDs)
	if err != nil {
		return nil, err
	}

	return &DoctorStats{
		TotalReviews:  summary.ReviewCount,
		AverageRating: summary.AverageRating,
	}, nil
}
