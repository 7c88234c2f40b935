package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// TriageRepository persists triage sessions and their messages.
type TriageRepository interface {
	ListSessions(ctx context.Context, userID string) ([]*entities.TriageSession, error)

	CreateSession(ctx context.Context, session *entities.TriageSession) error

	GetSession(ctx context.Context, sessionID string) (*entities.TriageSession, error)

	// DeleteSession removes the session and all of its messages.
	DeleteSession(ctx context.Context, sessionID string) error

	ListMessages(ctx context.Context, sessionID string) ([]*entities.TriageMessage, error)

	// AppendTurn stores a patient/assistant message pair and updates the
	// session title and timestamp in one transaction.
	AppendTurn(ctx context.Context, session *entities.TriageSession, patient, assistant *entities.TriageMessage) error
}
