package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

// haversineMeters computes the great-circle distance between the query point
// (first two placeholders: lat, lng) and a row's latitude/longitude columns.
// least() guards acos against floating point drift just past 1.0.
const haversineMeters = `(6371000 * acos(least(1.0,
		cos(radians(%[1]s)) * cos(radians(latitude)) *
		cos(radians(longitude) - radians(%[2]s)) +
		sin(radians(%[1]s)) * sin(radians(latitude)))))`

// DoctorAdapter implements DoctorRepository on Postgres.
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter.
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a curated doctor record.
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	record := goqu.Record{
		"id":         doctor.ID,
		"name":       doctor.Name,
		"photo_url":  doctor.PhotoURL,
		"specialty":  doctor.Specialty,
		"experience": doctor.Experience,
		"degree":     doctor.Degree,
		"languages":  pq.Array(doctor.Languages),
		"address":    doctor.Address,
		"about":      doctor.About,
		"latitude":   doctor.Location.Latitude,
		"longitude":  doctor.Location.Longitude,
		"review_ids": pq.Array(doctor.ReviewIDs),
	}

	query, args, err := a.db.Insert("doctors").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build doctor insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}

	return nil
}

// GetByID retrieves a doctor by id.
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query := `
		SELECT id, name, photo_url, specialty, experience, degree,
			languages, address, about, latitude, longitude, review_ids
		FROM doctors
		WHERE id = $1
	`

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	return doctor, nil
}

// FindNearbyBySpecialty returns matching doctors within the radius, nearest
// first. Proximity ordering only; no distance column is surfaced.
func (a *DoctorAdapter) FindNearbyBySpecialty(ctx context.Context, q repositories.GeoQuery) ([]*entities.Doctor, error) {
	query := fmt.Sprintf(`
		SELECT id, name, photo_url, specialty, experience, degree,
			languages, address, about, latitude, longitude, review_ids
		FROM (
			SELECT *, `+haversineMeters+` AS distance
			FROM doctors
			WHERE specialty ILIKE '%%' || $3 || '%%'
		) nearby
		WHERE distance <= $4
		ORDER BY distance
	`, "$1", "$2")

	rows, err := a.client.DB().QueryContext(ctx, query,
		q.Latitude, q.Longitude, q.Specialty, q.RadiusMeters)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search doctors", err)
	}
	defer rows.Close()

	doctors := []*entities.Doctor{}
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctors", err)
	}

	return doctors, nil
}

// DistinctSpecialties lists the specialties present in the curated store.
func (a *DoctorAdapter) DistinctSpecialties(ctx context.Context) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, `SELECT DISTINCT specialty FROM doctors WHERE specialty <> ''`)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctor specialties", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	var languages, reviewIDs pq.StringArray
	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.PhotoURL,
		&doctor.Specialty,
		&doctor.Experience,
		&doctor.Degree,
		&languages,
		&doctor.Address,
		&doctor.About,
		&doctor.Location.Latitude,
		&doctor.Location.Longitude,
		&reviewIDs,
	)
	if err != nil {
		return nil, err
	}
	doctor.Languages = languages
	doctor.ReviewIDs = reviewIDs
	return doctor, nil
}
