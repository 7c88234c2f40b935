package routes

import (
	"net/http"

	"github.com/farishtaa/carefinder/internal/api/handlers"
	"github.com/farishtaa/carefinder/internal/api/middleware"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
)

// Router holds all route handlers.
type Router struct {
	mux *http.ServeMux

	searchHandler       *handlers.SearchHandler
	reviewHandler       *handlers.ReviewHandler
	practitionerHandler *handlers.PractitionerHandler
	dashboardHandler    *handlers.DashboardHandler
	triageHandler       *handlers.TriageHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router. triageHandler and metrics may be nil when
// the corresponding subsystem is disabled.
func NewRouter(
	searchHandler *handlers.SearchHandler,
	reviewHandler *handlers.ReviewHandler,
	practitionerHandler *handlers.PractitionerHandler,
	dashboardHandler *handlers.DashboardHandler,
	triageHandler *handlers.TriageHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		searchHandler:       searchHandler,
		reviewHandler:       reviewHandler,
		practitionerHandler: practitionerHandler,
		dashboardHandler:    dashboardHandler,
		triageHandler:       triageHandler,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes and wraps them in the
// middleware chain.
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Specialist search
	r.mux.HandleFunc("POST /api/search/{specialty}", r.searchHandler.Search)

	// Practitioner directory
	r.mux.HandleFunc("GET /api/practitioners/suggest", r.practitionerHandler.Suggest)
	r.mux.HandleFunc("GET /api/practitioners/{id}", r.practitionerHandler.GetPractitioner)
	r.mux.HandleFunc("GET /api/categories", r.practitionerHandler.GetCategories)

	// Reviews
	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.AddReview)
	r.mux.HandleFunc("GET /api/reviews/{targetId}", r.reviewHandler.ListReviews)

	// Hospital and doctor dashboards
	r.mux.HandleFunc("GET /api/hospitals/{hospitalId}/doctors", r.dashboardHandler.ListRoster)
	r.mux.HandleFunc("POST /api/hospitals/{hospitalId}/doctors", r.dashboardHandler.AddDoctor)
	r.mux.HandleFunc("DELETE /api/hospitals/{hospitalId}/doctors/{doctorId}", r.dashboardHandler.RemoveDoctor)
	r.mux.HandleFunc("GET /api/hospitals/{hospitalId}/stats", r.dashboardHandler.HospitalStats)
	r.mux.HandleFunc("GET /api/doctors/{doctorId}/stats", r.dashboardHandler.DoctorStats)

	// Symptom triage chat
	if r.triageHandler != nil {
		r.mux.HandleFunc("GET /api/triage/sessions", r.triageHandler.ListSessions)
		r.mux.HandleFunc("POST /api/triage/sessions", r.triageHandler.CreateSession)
		r.mux.HandleFunc("DELETE /api/triage/sessions/{sessionId}", r.triageHandler.DeleteSession)
		r.mux.HandleFunc("GET /api/triage/sessions/{sessionId}/messages", r.triageHandler.ListMessages)
		r.mux.HandleFunc("POST /api/triage/sessions/{sessionId}/messages", r.triageHandler.SymptomCheck)
	}

	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
