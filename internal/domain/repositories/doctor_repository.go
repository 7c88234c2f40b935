package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// GeoQuery describes one specialty-within-radius lookup. Specialty matching is
// case-insensitive substring matching, not exact equality.
type GeoQuery struct {
	Specialty    string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// DoctorRepository persists curated doctor records.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entities.Doctor) error

	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// FindNearbyBySpecialty returns matching doctors within the radius,
	// nearest first. The proximity ordering alone suffices for doctors;
	// no distance value is returned.
	FindNearbyBySpecialty(ctx context.Context, query GeoQuery) ([]*entities.Doctor, error)

	DistinctSpecialties(ctx context.Context) ([]string, error)
}
