package database

import (
	"context"
	"fmt"
	"math"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// ReviewAdapter implements ReviewRepository on Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// refColumn names the denormalized review-ref array on each owner store.
// Doctor users keep their refs separate from their account data.
func refColumn(store repositories.ReviewOwnerStore) (table, column string, err error) {
	switch store {
	case repositories.OwnerStoreDoctor:
		return "doctors", "review_ids", nil
	case repositories.OwnerStoreHospital:
		return "hospitals", "review_ids", nil
	case repositories.OwnerStoreUser:
		return "users", "doctor_review_ids", nil
	default:
		return "", "", fmt.Errorf("unknown review owner store %q", store)
	}
}

// CreateForOwner inserts the review and appends its id to the owner's
// review-ref array in a single transaction.
func (a *ReviewAdapter) CreateForOwner(ctx context.Context, review *entities.Review, owner repositories.ReviewOwner) error {
	table, column, err := refColumn(owner.Store)
	if err != nil {
		return apperrors.NewInternalError("failed to resolve review owner store", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin review transaction", err)
	}
	defer tx.Rollback()

	insert, args, err := a.db.Insert("reviews").Rows(goqu.Record{
		"id":             review.ID,
		"target_id":      review.TargetID,
		"target_variant": review.TargetVariant,
		"reviewer_id":    review.ReviewerID,
		"rating":         review.Rating,
		"text":           review.Text,
		"created_at":     review.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	attach := fmt.Sprintf(`UPDATE %s SET %s = array_append(%s, $2) WHERE id = $1`, table, column, column)
	result, err := tx.ExecContext(ctx, attach, owner.ID, review.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to attach review to owner", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review target %s not found", owner.ID))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit review transaction", err)
	}

	return nil
}

// ListByIDs returns the reviews with the given ids, newest first, each joined
// with the reviewer's display name.
func (a *ReviewAdapter) ListByIDs(ctx context.Context, ids []string) ([]*entities.Review, error) {
	if len(ids) == 0 {
		return []*entities.Review{}, nil
	}

	query := `
		SELECT r.id, r.target_id, r.target_variant, r.reviewer_id, r.rating, r.text, r.created_at,
			COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')
		FROM reviews r
		LEFT JOIN users u ON u.id = r.reviewer_id
		WHERE r.id = ANY($1)
		ORDER BY r.created_at DESC
	`

	return a.queryReviews(ctx, query, pq.Array(ids))
}

// ListByTarget returns the reviews recorded against a target id, newest first.
func (a *ReviewAdapter) ListByTarget(ctx context.Context, targetID string) ([]*entities.Review, error) {
	query := `
		SELECT r.id, r.target_id, r.target_variant, r.reviewer_id, r.rating, r.text, r.created_at,
			COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')
		FROM reviews r
		LEFT JOIN users u ON u.id = r.reviewer_id
		WHERE r.target_id = $1
		ORDER BY r.created_at DESC
	`

	return a.queryReviews(ctx, query, targetID)
}

// Summary aggregates count and average rating over the given review ids.
func (a *ReviewAdapter) Summary(ctx context.Context, reviewIDs []string) (*entities.RatingSummary, error) {
	if len(reviewIDs) == 0 {
		return &entities.RatingSummary{}, nil
	}

	query := `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE id = ANY($1)
	`

	return a.querySummary(ctx, query, pq.Array(reviewIDs))
}

// SummaryByTargets aggregates across several targets of one variant.
func (a *ReviewAdapter) SummaryByTargets(ctx context.Context, targetIDs []string, variant string) (*entities.RatingSummary, error) {
	if len(targetIDs) == 0 {
		return &entities.RatingSummary{}, nil
	}

	query := `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE target_id = ANY($1) AND target_variant = $2
	`

	return a.querySummary(ctx, query, pq.Array(targetIDs), variant)
}

func (a *ReviewAdapter) queryReviews(ctx context.Context, query string, args ...any) ([]*entities.Review, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.TargetID,
			&review.TargetVariant,
			&review.ReviewerID,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
			&review.ReviewerName,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

func (a *ReviewAdapter) querySummary(ctx context.Context, query string, args ...any) (*entities.RatingSummary, error) {
	summary := &entities.RatingSummary{}
	var avg float64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&summary.ReviewCount, &avg); err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate reviews", err)
	}

	// One decimal place, 0 when there are no reviews.
	summary.AverageRating = math.Round(avg*10) / 10
	return summary, nil
}
