package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// Dashboard backs the hospital and doctor dashboard endpoints.
type Dashboard interface {
	AddDoctor(ctx context.Context, hospitalUserID string, input services.AddDoctorInput) (*entities.User, error)
	RemoveDoctor(ctx context.Context, hospitalUserID, doctorUserID string) error
	ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error)
	HospitalStats(ctx context.Context, hospitalUserID string) (*services.HospitalStats, error)
	DoctorStats(ctx context.Context, doctorUserID string) (*services.DoctorStats, error)
}

// DashboardHandler serves the hospital and doctor dashboard endpoints.
type DashboardHandler struct {
	dashboardService Dashboard
}

func NewDashboardHandler(dashboardService Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type addDoctorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}

// AddDoctor handles POST /api/hospitals/{hospitalId}/doctors
func (h *DashboardHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	var body addDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doctor, err := h.dashboardService.AddDoctor(r.Context(), r.PathValue("hospitalId"), services.AddDoctorInput{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Password:  body.Password,
		Specialty: body.Specialty,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// RemoveDoctor handles DELETE /api/hospitals/{hospitalId}/doctors/{doctorId}
func (h *DashboardHandler) RemoveDoctor(w http.ResponseWriter, r *http.Request) {
	err := h.dashboardService.RemoveDoctor(r.Context(), r.PathValue("hospitalId"), r.PathValue("doctorId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRoster handles GET /api/hospitals/{hospitalId}/doctors
func (h *DashboardHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.dashboardService.ListRoster(r.Context(), r.PathValue("hospitalId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": roster,
		"count":   len(roster),
	})
}

// HospitalStats handles GET /api/hospitals/{hospitalId}/stats
func (h *DashboardHandler) HospitalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.HospitalStats(r.Context(), r.PathValue("hospitalId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// DoctorStats handles GET /api/doctors/{doctorId}/stats
func (h *DashboardHandler) DoctorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.DoctorStats(r.Context(), r.PathValue("doctorId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
