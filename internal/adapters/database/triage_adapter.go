package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// TriageAdapter implements TriageRepository on Postgres.
type TriageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTriageAdapter creates a new triage adapter.
func NewTriageAdapter(client *postgres.Client) repositories.TriageRepository {
	return &TriageAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListSessions returns a user's sessions, most recently updated first.
func (a *TriageAdapter) ListSessions(ctx context.Context, userID string) ([]*entities.TriageSession, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM triage_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list triage sessions", err)
	}
	defer rows.Close()

	sessions := []*entities.TriageSession{}
	for rows.Next() {
		session := &entities.TriageSession{}
		if err := rows.Scan(&session.ID, &session.UserID, &session.Title, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan triage session", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating triage sessions", err)
	}

	return sessions, nil
}

// CreateSession inserts a new session.
func (a *TriageAdapter) CreateSession(ctx context.Context, session *entities.TriageSession) error {
	query, args, err := a.db.Insert("triage_sessions").Rows(goqu.Record{
		"id":         session.ID,
		"user_id":    session.UserID,
		"title":      session.Title,
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build session insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create triage session", err)
	}

	return nil
}

// GetSession retrieves a session by id.
func (a *TriageAdapter) GetSession(ctx context.Context, sessionID string) (*entities.TriageSession, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM triage_sessions
		WHERE id = $1
	`

	session := &entities.TriageSession{}
	err := a.client.DB().QueryRowContext(ctx, query, sessionID).
		Scan(&session.ID, &session.UserID, &session.Title, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("triage session %s not found", sessionID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get triage session", err)
	}

	return session, nil
}

// DeleteSession removes the session and its messages in one transaction.
func (a *TriageAdapter) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin delete transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM triage_messages WHERE session_id = $1`, sessionID); err != nil {
		return apperrors.NewInternalError("failed to delete triage messages", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM triage_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete triage session", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("triage session %s not found", sessionID))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit delete transaction", err)
	}

	return nil
}

// ListMessages returns a session's messages, oldest first.
func (a *TriageAdapter) ListMessages(ctx context.Context, sessionID string) ([]*entities.TriageMessage, error) {
	query := `
		SELECT id, session_id, user_id, role, content, created_at
		FROM triage_messages
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := a.client.DB().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list triage messages", err)
	}
	defer rows.Close()

	messages := []*entities.TriageMessage{}
	for rows.Next() {
		msg := &entities.TriageMessage{}
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan triage message", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating triage messages", err)
	}

	return messages, nil
}

// AppendTurn stores a patient/assistant message pair and refreshes the
// session's title and updated timestamp atomically.
func (a *TriageAdapter) AppendTurn(ctx context.Context, session *entities.TriageSession, patient, assistant *entities.TriageMessage) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin append transaction", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO triage_messages (id, session_id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, msg := range []*entities.TriageMessage{patient, assistant} {
		if _, err := tx.ExecContext(ctx, insert,
			msg.ID, msg.SessionID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt); err != nil {
			return apperrors.NewInternalError("failed to insert triage message", err)
		}
	}

	update := `UPDATE triage_sessions SET title = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, session.ID, session.Title, session.UpdatedAt); err != nil {
		return apperrors.NewInternalError("failed to update triage session", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit append transaction", err)
	}

	return nil
}
