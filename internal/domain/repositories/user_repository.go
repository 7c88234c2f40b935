package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// UserRepository persists registered accounts, including doctor users and
// hospital accounts with their doctor rosters.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error

	GetByID(ctx context.Context, id string) (*entities.User, error)

	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetDoctorUser returns the user only when it is a doctor account.
	GetDoctorUser(ctx context.Context, id string) (*entities.User, error)

	// FindDoctorsNearbyBySpecialty returns completed doctor profiles within
	// the radius, nearest first.
	FindDoctorsNearbyBySpecialty(ctx context.Context, query GeoQuery) ([]*entities.User, error)

	DistinctDoctorSpecialties(ctx context.Context) ([]string, error)

	ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error)

	AddToRoster(ctx context.Context, hospitalUserID, doctorUserID string) error

	// RemoveFromRoster detaches the doctor from the hospital's roster.
	// The doctor user itself is never deleted.
	RemoveFromRoster(ctx context.Context, hospitalUserID, doctorUserID string) error
}
