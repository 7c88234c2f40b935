package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farishtaa/carefinder/internal/adapters/database"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

func newHospitalAdapter(t *testing.T) (repositories.HospitalRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewHospitalAdapter(postgres.NewClientWithDB(db)), mock
}

func TestHospitalAdapter_Upsert(t *testing.T) {
	t.Run("targets the name and coordinates constraint", func(t *testing.T) {
		adapter, mock := newHospitalAdapter(t)

		mock.ExpectQuery(`INSERT INTO hospitals(?s:.*)ON CONFLICT \(name, longitude, latitude\) DO UPDATE SET(?s:.*)RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("hosp-1"))

		err := adapter.Upsert(context.Background(), &entities.Hospital{
			Name: "City Heart Care",
			Type: "clinic",
			Location: entities.Location{
				Latitude:  23.25,
				Longitude: 77.41,
			},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigns an id when missing", func(t *testing.T) {
		adapter, mock := newHospitalAdapter(t)

		mock.ExpectQuery(`INSERT INTO hospitals`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("fresh-id"))

		hospital := &entities.Hospital{Name: "General Hospital"}
		require.NoError(t, adapter.Upsert(context.Background(), hospital))
		assert.NotEmpty(t, hospital.ID)
	})

	t.Run("keeps a caller supplied id", func(t *testing.T) {
		adapter, mock := newHospitalAdapter(t)

		mock.ExpectQuery(`INSERT INTO hospitals`).
			WithArgs("hosp-1", "General Hospital", "", nil, "", "", "", "", "", 0.0, 0.0, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("hosp-1"))

		hospital := &entities.Hospital{ID: "hosp-1", Name: "General Hospital"}
		require.NoError(t, adapter.Upsert(context.Background(), hospital))
		assert.Equal(t, "hosp-1", hospital.ID)
	})

	t.Run("conflict keeps the existing row id", func(t *testing.T) {
		adapter, mock := newHospitalAdapter(t)

		mock.ExpectQuery(`INSERT INTO hospitals(?s:.*)RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("original-id"))

		hospital := &entities.Hospital{Name: "City Heart Care"}
		require.NoError(t, adapter.Upsert(context.Background(), hospital))
		assert.Equal(t, "original-id", hospital.ID)
	})
}

func TestHospitalAdapter_GetByID(t *testing.T) {
	t.Run("missing hospital yields not found", func(t *testing.T) {
		adapter, mock := newHospitalAdapter(t)

		mock.ExpectQuery(`SELECT id, name, type, specialties`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := adapter.GetByID(context.Background(), "ghost")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestHospitalAdapter_FindNearbyBySpecialty(t *testing.T) {
	adapter, mock := newHospitalAdapter(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "type", "specialties", "street", "district", "state", "postcode",
		"about", "latitude", "longitude", "review_ids", "distance",
	}).
		AddRow("hosp-1", "City Heart Care", "clinic", `{cardiologist}`, "", "Bhopal", "", "", "", 23.25, 77.41, `{}`, 850.5).
		AddRow("hosp-2", "General Hospital", "hospital", `{cardiologist,general_physician}`, "", "", "", "", "", 23.26, 77.42, `{}`, 2100.0)

	mock.ExpectQuery(`ORDER BY distance`).
		WithArgs(23.25, 77.41, "cardiologist", 5000.0).
		WillReturnRows(rows)

	hits, err := adapter.FindNearbyBySpecialty(context.Background(), repositories.GeoQuery{
		Specialty:    "cardiologist",
		Latitude:     23.25,
		Longitude:    77.41,
		RadiusMeters: 5000,
	})

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "City Heart Care", hits[0].Hospital.Name)
	assert.Equal(t, 850.5, hits[0].DistanceMeters)
	assert.Equal(t, []string{"cardiologist", "general_physician"}, hits[1].Hospital.Specialties)
}
