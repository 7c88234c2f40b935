package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

func TestDashboardService_AddDoctor(t *testing.T) {
	input := services.AddDoctorInput{
		FirstName: "Ravi",
		LastName:  "Iyer",
		Email:     "Ravi.Iyer@Example.com",
		Password:  "s3cret!",
		Specialty: "cardiologist",
	}

	t.Run("creates doctor account and attaches to roster", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, "hosp-user-1").Return(&entities.User{
			ID: "hosp-user-1", UserType: entities.UserTypeHospital,
		}, nil)

		var created *entities.User
		userRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				snapshot := *args.Get(1).(*entities.User)
				created = &snapshot
			}).
			Return(nil)
		userRepo.On("AddToRoster", mock.Anything, "hosp-user-1", mock.Anything).Return(nil)

		service := services.NewDashboardService(userRepo, new(MockReviewRepository))

		doctor, err := service.AddDoctor(context.Background(), "hosp-user-1", input)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
		assert.Equal(t, entities.UserTypeDoctor, doctor.UserType)
		assert.Equal(t, "ravi.iyer@example.com", doctor.Email)
		assert.False(t, doctor.ProfileCompleted)
		assert.Empty(t, doctor.Password, "response must not leak the hash")

		if assert.NotNil(t, created) {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret!")))
		}
	})

	t.Run("rejects non hospital accounts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, "patient-1").Return(&entities.User{
			ID: "patient-1", UserType: entities.UserTypePatient,
		}, nil)

		service := services.NewDashboardService(userRepo, new(MockReviewRepository))

		_, err := service.AddDoctor(context.Background(), "patient-1", input)

		assert.True(t, apperrors.IsValidation(err))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		service := services.NewDashboardService(new(MockUserRepository), new(MockReviewRepository))

		bad := input
		bad.Password = "abc"
		_, err := service.AddDoctor(context.Background(), "hosp-user-1", bad)

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestDashboardService_HospitalStats(t *testing.T) {
	t.Run("aggregates roster and reviews", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		reviewRepo := new(MockReviewRepository)

		userRepo.On("ListRoster", mock.Anything, "hosp-user-1").Return([]*entities.User{
			{ID: "doc-1", ProfileCompleted: true},
			{ID: "doc-2", ProfileCompleted: false},
			{ID: "doc-3", ProfileCompleted: true},
		}, nil)
		reviewRepo.On("SummaryByTargets", mock.Anything, []string{"doc-1", "doc-2", "doc-3"}, entities.ReviewTargetDoctor).
			Return(&entities.RatingSummary{ReviewCount: 7, AverageRating: 4.3}, nil)

		service := services.NewDashboardService(userRepo, reviewRepo)

		stats, err := service.HospitalStats(context.Background(), "hosp-user-1")

		assert.NoError(t, err)
		assert.Equal(t, 3, stats.TotalDoctors)
		assert.Equal(t, 2, stats.CompletedProfiles)
		assert.Equal(t, 7, stats.TotalReviews)
		assert.Equal(t, 4.3, stats.AverageRating)
	})

	t.Run("empty roster skips the review query", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		reviewRepo := new(MockReviewRepository)

		userRepo.On("ListRoster", mock.Anything, "hosp-user-1").Return([]*entities.User{}, nil)

		service := services.NewDashboardService(userRepo, reviewRepo)

		stats, err := service.HospitalStats(context.Background(), "hosp-user-1")

		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalDoctors)
		assert.Equal(t, 0.0, stats.AverageRating)
		reviewRepo.AssertNotCalled(t, "SummaryByTargets", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDashboardService_DoctorStats(t *testing.T) {
	userRepo := new(MockUserRepository)
	reviewRepo := new(MockReviewRepository)

	userRepo.On("GetDoctorUser", mock.Anything, "doc-1").Return(&entities.User{
		ID: "doc-1", UserType: entities.UserTypeDoctor, DoctorReviewIDs: []string{"rev-1", "rev-2"},
	}, nil)
	reviewRepo.On("Summary", mock.Anything, []string{"rev-1", "rev-2"}).
		Return(&entities.RatingSummary{ReviewCount: 2, AverageRating: 4.5}, nil)

	service := services.NewDashboardService(userRepo, reviewRepo)

	stats, err := service.DoctorStats(context.Background(), "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 4.5, stats.AverageRating)
}

func TestDashboardService_ListRoster(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ListRoster", mock.Anything, "hosp-user-1").Return([]*entities.User{
		{ID: "doc-1", Password: "$2a$10$hash"},
	}, nil)

	service := services.NewDashboardService(userRepo, new(MockReviewRepository))

	roster, err := service.ListRoster(context.Background(), "hosp-user-1")

	assert.NoError(t, err)
	if assert.Len(t, roster, 1) {
		assert.Empty(t, roster[0].Password)
	}
}
