package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// ReviewOwnerStore identifies which entity store resolved a review target.
type ReviewOwnerStore string

const (
	OwnerStoreDoctor   ReviewOwnerStore = "doctors"
	OwnerStoreHospital ReviewOwnerStore = "hospitals"
	OwnerStoreUser     ReviewOwnerStore = "users"
)

// ReviewOwner names the entity a new review attaches to.
type ReviewOwner struct {
	Store ReviewOwnerStore
	ID    string
}

// ReviewRepository persists reviews and maintains the denormalized review-ref
// arrays on owning entities.
type ReviewRepository interface {
	// CreateForOwner inserts the review and appends its id to the owner's
	// review-ref array in a single transaction, so a failed append never
	// leaves an orphaned review.
	CreateForOwner(ctx context.Context, review *entities.Review, owner ReviewOwner) error

	ListByIDs(ctx context.Context, ids []string) ([]*entities.Review, error)

	ListByTarget(ctx context.Context, targetID string) ([]*entities.Review, error)

	// Summary aggregates rating count and average over the given review ids.
	// An empty id list yields a zero summary.
	Summary(ctx context.Context, reviewIDs []string) (*entities.RatingSummary, error)

	// SummaryByTargets aggregates across several targets at once, for
	// dashboard roster stats.
	SummaryByTargets(ctx context.Context, targetIDs []string, variant string) (*entities.RatingSummary, error)
}
