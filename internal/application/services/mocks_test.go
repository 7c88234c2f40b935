package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
)

// Mocks shared across the service tests.

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindNearbyBySpecialty(ctx context.Context, query repositories.GeoQuery) ([]*entities.Doctor, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) DistinctSpecialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockHospitalRepository struct {
	mock.Mock
}

func (m *MockHospitalRepository) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Hospital), args.Error(1)
}

func (m *MockHospitalRepository) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	args := m.Called(ctx, hospital)
	return args.Error(0)
}

func (m *MockHospitalRepository) FindNearbyBySpecialty(ctx context.Context, query repositories.GeoQuery) ([]repositories.HospitalHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.HospitalHit), args.Error(1)
}

func (m *MockHospitalRepository) DistinctSpecialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetDoctorUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindDoctorsNearbyBySpecialty(ctx context.Context, query repositories.GeoQuery) ([]*entities.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) DistinctDoctorSpecialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) ListRoster(ctx context.Context, hospitalUserID string) ([]*entities.User, error) {
	args := m.Called(ctx, hospitalUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) AddToRoster(ctx context.Context, hospitalUserID, doctorUserID string) error {
	args := m.Called(ctx, hospitalUserID, doctorUserID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFromRoster(ctx context.Context, hospitalUserID, doctorUserID string) error {
	args := m.Called(ctx, hospitalUserID, doctorUserID)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateForOwner(ctx context.Context, review *entities.Review, owner repositories.ReviewOwner) error {
	args := m.Called(ctx, review, owner)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByIDs(ctx context.Context, ids []string) ([]*entities.Review, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTarget(ctx context.Context, targetID string) ([]*entities.Review, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) Summary(ctx context.Context, reviewIDs []string) (*entities.RatingSummary, error) {
	args := m.Called(ctx, reviewIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RatingSummary), args.Error(1)
}

func (m *MockReviewRepository) SummaryByTargets(ctx context.Context, targetIDs []string, variant string) (*entities.RatingSummary, error) {
	args := m.Called(ctx, targetIDs, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RatingSummary), args.Error(1)
}

type MockTriageRepository struct {
	mock.Mock
}

func (m *MockTriageRepository) ListSessions(ctx context.Context, userID string) ([]*entities.TriageSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TriageSession), args.Error(1)
}

func (m *MockTriageRepository) CreateSession(ctx context.Context, session *entities.TriageSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockTriageRepository) GetSession(ctx context.Context, sessionID string) (*entities.TriageSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TriageSession), args.Error(1)
}

func (m *MockTriageRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockTriageRepository) ListMessages(ctx context.Context, sessionID string) ([]*entities.TriageMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TriageMessage), args.Error(1)
}

func (m *MockTriageRepository) AppendTurn(ctx context.Context, session *entities.TriageSession, patient, assistant *entities.TriageMessage) error {
	args := m.Called(ctx, session, patient, assistant)
	return args.Error(0)
}

type MockTriageModelProvider struct {
	mock.Mock
}

func (m *MockTriageModelProvider) GenerateReply(ctx context.Context, language, prompt string, history []*entities.TriageMessage, patient *providers.TriagePatient) (string, error) {
	args := m.Called(ctx, language, prompt, history, patient)
	return args.String(0), args.Error(1)
}

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheProvider) SetNX(ctx context.Context, key string, value []byte, expirationSeconds int) (bool, error) {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Bool(0), args.Error(1)
}

type MockIndexRepository struct {
	mock.Mock
}

func (m *MockIndexRepository) Index(ctx context.Context, record *entities.PractitionerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIndexRepository) Suggest(ctx context.Context, prefix string, limit int) ([]*entities.PractitionerRecord, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PractitionerRecord), args.Error(1)
}
