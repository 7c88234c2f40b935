package repositories

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// HospitalHit is a facility search result annotated with the computed
// distance from the query point, which the hospital geo query returns for
// display.
type HospitalHit struct {
	Hospital       *entities.Hospital
	DistanceMeters float64
}

// HospitalRepository persists facility records.
type HospitalRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// Upsert inserts the hospital or fully replaces the existing row with
	// the same (name, coordinates) key. The operation must be atomic so
	// overlapping enrichment runs cannot create duplicates.
	Upsert(ctx context.Context, hospital *entities.Hospital) error

	// FindNearbyBySpecialty returns matching facilities within the radius,
	// nearest first, each annotated with its distance in meters.
	FindNearbyBySpecialty(ctx context.Context, query GeoQuery) ([]HospitalHit, error)

	DistinctSpecialties(ctx context.Context) ([]string, error)
}
