package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

const (
	newSessionTitle = "New Chat"
	maxTitleRunes   = 40
)

// TriageTurn is the stored message pair produced by one symptom check.
type TriageTurn struct {
	Patient   *entities.TriageMessage `json:"patient"`
	Assistant *entities.TriageMessage `json:"assistant"`
}

// TriageService runs multi-turn symptom triage conversations against the
// model provider, persisting each turn.
type TriageService struct {
	triageRepo repositories.TriageRepository
	userRepo   repositories.UserRepository
	model      providers.TriageModelProvider
}

func NewTriageService(
	triageRepo repositories.TriageRepository,
	userRepo repositories.UserRepository,
	model providers.TriageModelProvider,
) *TriageService {
	return &TriageService{triageRepo: triageRepo, userRepo: userRepo, model: model}
}

// ListSessions returns the user's sessions, most recently updated first.
func (s *TriageService) ListSessions(ctx context.Context, userID string) ([]*entities.TriageSession, error) {
	return s.triageRepo.ListSessions(ctx, userID)
}

// CreateSession opens a fresh session. The placeholder title is replaced by
// the first symptom prompt.
func (s *TriageService) CreateSession(ctx context.Context, userID string) (*entities.TriageSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	now := time.Now().UTC()
	session := &entities.TriageSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     newSessionTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.triageRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session and its messages. Sessions belong to their
// creator; other users get not-found rather than a hint the session exists.
func (s *TriageService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.triageRepo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != userID {
		return apperrors.NewNotFoundError("session not found")
	}
	return s.triageRepo.DeleteSession(ctx, sessionID)
}

// ListMessages returns a session's turns oldest first.
func (s *TriageService) ListMessages(ctx context.Context, userID, sessionID string) ([]*entities.TriageMessage, error) {
	session, err := s.triageRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.NewNotFoundError("session not found")
	}
	return s.triageRepo.ListMessages(ctx, sessionID)
}

// SymptomCheck runs one triage turn: loads the history, asks the model for a
// reply in the requested language, and stores the patient/assistant pair. On
// a session's first turn the prompt becomes the session title.
func (s *TriageService) SymptomCheck(ctx context.Context, userID, sessionID, prompt, language string) (*TriageTurn, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperrors.NewValidationError("prompt is required")
	}

	session, err := s.triageRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.NewNotFoundError("session not found")
	}

	history, err := s.triageRepo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patientCtx := s.patientContext(ctx, userID)

	reply, err := s.model.GenerateReply(ctx, language, prompt, history, patientCtx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patientMsg := &entities.TriageMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      entities.TriageRolePatient,
		Content:   prompt,
		CreatedAt: now,
	}
	assistantMsg := &entities.TriageMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      entities.TriageRoleAssistant,
		Content:   reply,
		CreatedAt: now,
	}

	if session.Title == newSessionTitle {
		session.Title = truncateTitle(prompt)
	}
	session.UpdatedAt = now

	if err := s.triageRepo.AppendTurn(ctx, session, patientMsg, assistantMsg); err != nil {
		return nil, err
	}

	return &TriageTurn{Patient: patientMsg, Assistant: assistantMsg}, nil
}

// patientContext loads demographic context for prompt personalization.
// Missing or failed lookups degrade to an anonymous patient.
func (s *TriageService) patientContext(ctx context.Context, userID string) *providers.TriagePatient {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to load patient context")
		}
		return nil
	}
	return &providers.TriagePatient{
		Name:   user.DisplayName(),
		Age:    user.Age,
		Gender: user.Gender,
	}
}

func truncateTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= maxTitleRunes {
		return prompt
	}
	return string(runes[:maxTitleRunes]) + "..."
}
