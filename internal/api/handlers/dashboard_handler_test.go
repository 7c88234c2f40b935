package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farishtaa/carefinder/internal/api/handlers"
	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

type stubDashboard struct {
	lastInput services.AddDoctorInput
	doctor    *entities.User
	stats     *services.HospitalStats
	err       error
}

func (s *stubDashboard) AddDoctor(ctx context.Context, hospitalUserID string, input services.AddDoctorInput) (*entities.User, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.doctor, nil
}

func (s *stubDashboard) RemoveDoctor(ctx context.Context, hospitalUserID, doctorUserID string) error {
	return s.err
}

func (s *stubDashboard) ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error) {
	return nil, s.err
}

func (s *stubDashboard) HospitalStats(ctx context.Context, hospitalUserID string) (*services.HospitalStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *stubDashboard) DoctorStats(ctx context.Context, doctorUserID string) (*services.DoctorStats, error) {
	return nil, s.err
}

func TestDashboardHandler_AddDoctor(t *testing.T) {
	t.Run("created doctor is returned with 201", func(t *testing.T) {
		service := &stubDashboard{doctor: &entities.User{
			ID: "doc-1", FirstName: "Ravi", UserType: entities.UserTypeDoctor,
		}}
		handler := handlers.NewDashboardHandler(service)

		body := `{"first_name":"Ravi","email":"ravi@example.com","password":"s3cret!","specialty":"cardiologist"}`
		req := httptest.NewRequest("POST", "/api/hospitals/hosp-1/doctors", strings.NewReader(body))
		req.SetPathValue("hospitalId", "hosp-1")
		w := httptest.NewRecorder()

		handler.AddDoctor(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "cardiologist", service.lastInput.Specialty)

		var response entities.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "doc-1", response.ID)
	})

	t.Run("duplicate email yields 409", func(t *testing.T) {
		service := &stubDashboard{err: apperrors.NewConflictError("email already registered")}
		handler := handlers.NewDashboardHandler(service)

		body := `{"first_name":"Ravi","email":"ravi@example.com","password":"s3cret!"}`
		req := httptest.NewRequest("POST", "/api/hospitals/hosp-1/doctors", strings.NewReader(body))
		req.SetPathValue("hospitalId", "hosp-1")
		w := httptest.NewRecorder()

		handler.AddDoctor(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDashboardHandler_RemoveDoctor(t *testing.T) {
	handler := handlers.NewDashboardHandler(&stubDashboard{})

	req := httptest.NewRequest("DELETE", "/api/hospitals/hosp-1/doctors/doc-1", nil)
	req.SetPathValue("hospitalId", "hosp-1")
	req.SetPathValue("doctorId", "doc-1")
	w := httptest.NewRecorder()

	handler.RemoveDoctor(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDashboardHandler_HospitalStats(t *testing.T) {
	service := &stubDashboard{stats: &services.HospitalStats{
		TotalDoctors: 3, CompletedProfiles: 2, TotalReviews: 7, AverageRating: 4.3,
	}}
	handler := handlers.NewDashboardHandler(service)

	req := httptest.NewRequest("GET", "/api/hospitals/hosp-1/stats", nil)
	req.SetPathValue("hospitalId", "hosp-1")
	w := httptest.NewRecorder()

	handler.HospitalStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats services.HospitalStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 3, stats.TotalDoctors)
	assert.Equal(t, 4.3, stats.AverageRating)
}
