package entities

import "time"

// Review target variants. Registered doctor users are stored under the
// Doctor variant even though they live in the users store.
const (
	ReviewTargetDoctor   = "Doctor"
	ReviewTargetHospital = "Hospital"
)

// Review is a patient rating of a doctor or facility. Reviews are append-only.
type Review struct {
	ID            string    `json:"id" db:"id"`
	TargetID      string    `json:"target_id" db:"target_id"`
	TargetVariant string    `json:"target_variant" db:"target_variant"`
	ReviewerID    string    `json:"reviewer_id" db:"reviewer_id"`
	Rating        int       `json:"rating" db:"rating"`
	Text          string    `json:"text,omitempty" db:"text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// ReviewerName is denormalized onto responses; it is not persisted.
	ReviewerName string `json:"reviewer_name,omitempty" db:"-"`
}

// RatingSummary is a read-time aggregate over an entity's current reviews.
type RatingSummary struct {
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}
