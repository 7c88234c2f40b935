package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// Triage runs symptom triage conversations.
type Triage interface {
	ListSessions(ctx context.Context, userID string) ([]*entities.TriageSession, error)
	CreateSession(ctx context.Context, userID string) (*entities.TriageSession, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	ListMessages(ctx context.Context, userID, sessionID string) ([]*entities.TriageMessage, error)
	SymptomCheck(ctx context.Context, userID, sessionID, prompt, language string) (*services.TriageTurn, error)
}

// TriageHandler serves the symptom triage chat endpoints. The user id comes
// from a header set by the edge proxy after authentication.
type TriageHandler struct {
	triageService Triage
}

func NewTriageHandler(triageService Triage) *TriageHandler {
	return &TriageHandler{triageService: triageService}
}

const userIDHeader = "X-User-Id"

func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "user id is required")
		return "", false
	}
	return userID, true
}

// ListSessions handles GET /api/triage/sessions
func (h *TriageHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	sessions, err := h.triageService.ListSessions(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// CreateSession handles POST /api/triage/sessions
func (h *TriageHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	session, err := h.triageService.CreateSession(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}

// DeleteSession handles DELETE /api/triage/sessions/{sessionId}
func (h *TriageHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.triageService.DeleteSession(r.Context(), userID, r.PathValue("sessionId")); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /api/triage/sessions/{sessionId}/messages
func (h *TriageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	messages, err := h.triageService.ListMessages(r.Context(), userID, r.PathValue("sessionId"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

type symptomCheckRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

// SymptomCheck handles POST /api/triage/sessions/{sessionId}/messages
func (h *TriageHandler) SymptomCheck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var body symptomCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.triageService.SymptomCheck(r.Context(), userID, r.PathValue("sessionId"), body.Prompt, body.Language)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, turn)
}
