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

const userColumns = `id, first_name, last_name, email, password, user_type, age, gender,
	specialty, experience, degree, languages, about, address, photo_url,
	latitude, longitude, doctor_review_ids, profile_completed,
	hospital_name, hospital_address, hospital_phone, hospital_about, doctor_ids, created_at`

// UserAdapter implements UserRepository on Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a registered account.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":                user.ID,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"email":             user.Email,
		"password":          user.Password,
		"user_type":         user.UserType,
		"age":               user.Age,
		"gender":            user.Gender,
		"specialty":         user.Specialty,
		"experience":        user.Experience,
		"degree":            user.Degree,
		"languages":         pq.Array(user.Languages),
		"about":             user.About,
		"address":           user.Address,
		"photo_url":         user.PhotoURL,
		"doctor_review_ids": pq.Array(user.DoctorReviewIDs),
		"profile_completed": user.ProfileCompleted,
		"hospital_name":     user.HospitalName,
		"hospital_address":  user.HospitalAddress,
		"hospital_phone":    user.HospitalPhone,
		"hospital_about":    user.HospitalAbout,
		"doctor_ids":        pq.Array(user.DoctorIDs),
		"created_at":        user.CreatedAt,
	}
	if user.Location != nil {
		record["latitude"] = user.Location.Latitude
		record["longitude"] = user.Location.Longitude
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return apperrors.NewConflictError(fmt.Sprintf("a user with email %s already exists", user.Email))
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by id.
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// GetDoctorUser retrieves a user only when it is a doctor account.
func (a *UserAdapter) GetDoctorUser(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND user_type = $2`, userColumns)

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, id, entities.UserTypeDoctor))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor user", err)
	}

	return user, nil
}

// FindDoctorsNearbyBySpecialty returns completed doctor profiles within the
// radius, nearest first.
func (a *UserAdapter) FindDoctorsNearbyBySpecialty(ctx context.Context, q repositories.GeoQuery) ([]*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %[3]s FROM (
			SELECT *, `+haversineMeters+` AS distance
			FROM users
			WHERE user_type = 'Doctor'
				AND profile_completed
				AND latitude IS NOT NULL
				AND specialty ILIKE '%%' || $3 || '%%'
		) nearby
		WHERE distance <= $4
		ORDER BY distance
	`, "$1", "$2", userColumns)

	rows, err := a.client.DB().QueryContext(ctx, query,
		q.Latitude, q.Longitude, q.Specialty, q.RadiusMeters)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search doctor users", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor user", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctor users", err)
	}

	return users, nil
}

// DistinctDoctorSpecialties lists specialties of completed doctor profiles.
func (a *UserAdapter) DistinctDoctorSpecialties(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT specialty FROM users
		WHERE user_type = 'Doctor' AND profile_completed AND specialty <> ''
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctor user specialties", err)
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

// ListRoster returns the doctor users on the hospital account's roster.
func (a *UserAdapter) ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE id = ANY (SELECT unnest(doctor_ids) FROM users WHERE id = $1)
		ORDER BY created_at
	`, userColumns)

	rows, err := a.client.DB().QueryContext(ctx, query, hospitalUserID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospital roster", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan roster entry", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating roster", err)
	}

	return users, nil
}

// AddToRoster appends a doctor user id to a hospital account's roster.
func (a *UserAdapter) AddToRoster(ctx context.Context, hospitalUserID, doctorUserID string) error {
	query := `
		UPDATE users
		SET doctor_ids = array_append(doctor_ids, $2)
		WHERE id = $1 AND user_type = 'Hospital'
	`

	result, err := a.client.DB().ExecContext(ctx, query, hospitalUserID, doctorUserID)
	if err != nil {
		return apperrors.NewInternalError("failed to add doctor to roster", err)
	}

	return requireRowUpdated(result, fmt.Sprintf("hospital account %s not found", hospitalUserID))
}

// RemoveFromRoster detaches a doctor user id from a hospital account's roster.
func (a *UserAdapter) RemoveFromRoster(ctx context.Context, hospitalUserID, doctorUserID string) error {
	query := `
		UPDATE users
		SET doctor_ids = array_remove(doctor_ids, $2)
		WHERE id = $1 AND user_type = 'Hospital'
	`

	result, err := a.client.DB().ExecContext(ctx, query, hospitalUserID, doctorUserID)
	if err != nil {
		return apperrors.NewInternalError("failed to remove doctor from roster", err)
	}

	return requireRowUpdated(result, fmt.Sprintf("hospital account %s not found", hospitalUserID))
}

func requireRowUpdated(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var languages, doctorReviewIDs, doctorIDs pq.StringArray
	var age sql.NullInt64
	var gender sql.NullString
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.UserType,
		&age,
		&gender,
		&user.Specialty,
		&user.Experience,
		&user.Degree,
		&languages,
		&user.About,
		&user.Address,
		&user.PhotoURL,
		&lat,
		&lng,
		&doctorReviewIDs,
		&user.ProfileCompleted,
		&user.HospitalName,
		&user.HospitalAddress,
		&user.HospitalPhone,
		&user.HospitalAbout,
		&doctorIDs,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Age = int(age.Int64)
	user.Gender = gender.String
	user.Languages = languages
	user.DoctorReviewIDs = doctorReviewIDs
	user.DoctorIDs = doctorIDs
	if lat.Valid && lng.Valid {
		user.Location = &entities.Location{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	return user, nil
}
