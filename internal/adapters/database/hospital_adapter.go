package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// HospitalAdapter implements HospitalRepository on Postgres. The geo queries
// and the composite-key upsert stay raw SQL; goqu cannot express them cleanly.
type HospitalAdapter struct {
	client *postgres.Client
}

// NewHospitalAdapter creates a new hospital adapter.
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{client: client}
}

// GetByID retrieves a hospital by id.
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query := `
		SELECT id, name, type, specialties, street, district, state, postcode,
			about, latitude, longitude, review_ids
		FROM hospitals
		WHERE id = $1
	`

	hospital, err := scanHospital(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}

	return hospital, nil
}

// Upsert inserts the hospital, or replaces the row with the same
// (name, longitude, latitude) key. The conflict target is the table's unique
// constraint, so concurrent enrichment runs over overlapping areas cannot
// insert duplicates. The existing review refs are preserved; everything else
// is replaced with the freshly built entity. On conflict the row keeps its
// original id, which RETURNING scans back into the entity so callers never
// hold an id the table discarded.
func (a *HospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	if hospital.ID == "" {
		hospital.ID = uuid.New().String()
	}

	query := `
		INSERT INTO hospitals (
			id, name, type, specialties, street, district, state, postcode,
			about, latitude, longitude, review_ids
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (name, longitude, latitude) DO UPDATE SET
			type = EXCLUDED.type,
			specialties = EXCLUDED.specialties,
			street = EXCLUDED.street,
			district = EXCLUDED.district,
			state = EXCLUDED.state,
			postcode = EXCLUDED.postcode,
			about = EXCLUDED.about
		RETURNING id
	`

	err := a.client.DB().QueryRowContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.Type,
		pq.Array(hospital.Specialties),
		hospital.Address.Street,
		hospital.Address.District,
		hospital.Address.State,
		hospital.Address.Postcode,
		hospital.About,
		hospital.Location.Latitude,
		hospital.Location.Longitude,
		pq.Array(hospital.ReviewIDs),
	).Scan(&hospital.ID)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert hospital", err)
	}

	return nil
}

// FindNearbyBySpecialty returns matching hospitals within the radius, nearest
// first, each carrying the computed distance in meters.
func (a *HospitalAdapter) FindNearbyBySpecialty(ctx context.Context, q repositories.GeoQuery) ([]repositories.HospitalHit, error) {
	query := fmt.Sprintf(`
		SELECT id, name, type, specialties, street, district, state, postcode,
			about, latitude, longitude, review_ids, distance
		FROM (
			SELECT *, `+haversineMeters+` AS distance
			FROM hospitals
			WHERE EXISTS (
				SELECT 1 FROM unnest(specialties) AS s
				WHERE s ILIKE '%%' || $3 || '%%'
			)
		) nearby
		WHERE distance <= $4
		ORDER BY distance
	`, "$1", "$2")

	rows, err := a.client.DB().QueryContext(ctx, query,
		q.Latitude, q.Longitude, q.Specialty, q.RadiusMeters)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search hospitals", err)
	}
	defer rows.Close()

	hits := []repositories.HospitalHit{}
	for rows.Next() {
		hospital := &entities.Hospital{}
		var specialties, reviewIDs pq.StringArray
		var distance float64
		err := rows.Scan(
			&hospital.ID,
			&hospital.Name,
			&hospital.Type,
			&specialties,
			&hospital.Address.Street,
			&hospital.Address.District,
			&hospital.Address.State,
			&hospital.Address.Postcode,
			&hospital.About,
			&hospital.Location.Latitude,
			&hospital.Location.Longitude,
			&reviewIDs,
			&distance,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospital.Specialties = specialties
		hospital.ReviewIDs = reviewIDs
		hits = append(hits, repositories.HospitalHit{Hospital: hospital, DistanceMeters: distance})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospitals", err)
	}

	return hits, nil
}

// DistinctSpecialties lists every specialty tag present across hospitals.
func (a *HospitalAdapter) DistinctSpecialties(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT unnest(specialties) FROM hospitals`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital specialties", err)
	}
	defer rows.Close()

	specialties := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty", err)
		}
		specialties = append(specialties, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating specialties", err)
	}

	return specialties, nil
}

func scanHospital(row rowScanner) (*entities.Hospital, error) {
	hospital := &entities.Hospital{}
	var specialties, reviewIDs pq.StringArray
	err := row.Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.Type,
		&specialties,
		&hospital.Address.Street,
		&hospital.Address.District,
		&hospital.Address.State,
		&hospital.Address.Postcode,
		&hospital.About,
		&hospital.Location.Latitude,
		&hospital.Location.Longitude,
		&reviewIDs,
	)
	if err != nil {
		return nil, err
	}
	hospital.Specialties = specialties
	hospital.ReviewIDs = reviewIDs
	return hospital, nil
}
