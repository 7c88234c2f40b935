package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

const (
	categoriesCacheKey = "directory:categories"
	categoriesCacheTTL = 300

	defaultSuggestLimit = 10
	maxSuggestLimit     = 25
)

// PractitionerDetail is a practitioner profile with its reviews and rating
// aggregate attached.
type PractitionerDetail struct {
	Record  *entities.PractitionerRecord `json:"record"`
	Reviews []*entities.Review           `json:"reviews"`
	Summary *entities.RatingSummary      `json:"summary"`
}

// DirectoryService serves practitioner profiles, the specialty category list
// and typeahead suggestions.
type DirectoryService struct {
	doctorRepo   repositories.DoctorRepository
	hospitalRepo repositories.HospitalRepository
	userRepo     repositories.UserRepository
	reviewRepo   repositories.ReviewRepository
	index        repositories.PractitionerIndexRepository
	cache        providers.CacheProvider
}

// NewDirectoryService creates a new directory service. index and cache may
// be nil.
func NewDirectoryService(
	doctorRepo repositories.DoctorRepository,
	hospitalRepo repositories.HospitalRepository,
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	index repositories.PractitionerIndexRepository,
	cache providers.CacheProvider,
) *DirectoryService {
	return &DirectoryService{
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
		index:        index,
		cache:        cache,
	}
}

// GetPractitioner resolves an id against the curated doctor, hospital and
// registered doctor stores in that order and returns the profile with its
// reviews and rating summary.
func (s *DirectoryService) GetPractitioner(ctx context.Context, id string) (*PractitionerDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("practitioner id is required")
	}

	record, reviewIDs, err := s.resolveRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByIDs(ctx, reviewIDs)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviewRepo.Summary(ctx, reviewIDs)
	if err != nil {
		return nil, err
	}

	return &PractitionerDetail{Record: record, Reviews: reviews, Summary: summary}, nil
}

// Categories returns the deduplicated union of specialty values across all
// three stores, sorted for stable output. The union is cached briefly since
// it backs the landing page.
func (s *DirectoryService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, categoriesCacheKey); err == nil && len(raw) > 0 {
			var cached []string
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var doctorSpecs, hospitalSpecs, userSpecs []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctorSpecs, err = s.doctorRepo.DistinctSpecialties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		hospitalSpecs, err = s.hospitalRepo.DistinctSpecialties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		userSpecs, err = s.userRepo.DistinctDoctorSpecialties(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0, len(doctorSpecs)+len(hospitalSpecs)+len(userSpecs))
	for _, specs := range [][]string{doctorSpecs, hospitalSpecs, userSpecs} {
		for _, spec := range specs {
			spec = strings.TrimSpace(spec)
			if spec == "" {
				continue
			}
			key := strings.ToLower(spec)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			categories = append(categories, spec)
		}
	}
	sort.Strings(categories)

	if s.cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesCacheKey, raw, categoriesCacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache categories")
			}
		}
	}

	return categories, nil
}

// Suggest returns typeahead matches for a name or specialty prefix.
func (s *DirectoryService) Suggest(ctx context.Context, prefix string, limit int) ([]*entities.PractitionerRecord, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	if s.index == nil {
		return []*entities.PractitionerRecord{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}
	return s.index.Suggest(ctx, prefix, limit)
}

func (s *DirectoryService) resolveRecord(ctx context.Context, id string) (*entities.PractitionerRecord, []string, error) {
	if doctor, err := s.doctorRepo.GetByID(ctx, id); err == nil {
		return entities.PractitionerFromDoctor(doctor), doctor.ReviewIDs, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, nil, err
	}

	if hospital, err := s.hospitalRepo.GetByID(ctx, id); err == nil {
		record := entities.PractitionerFromHospital(hospital, 0)
		record.DistanceMeters = nil
		return record, hospital.ReviewIDs, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, nil, err
	}

	if user, err := s.userRepo.GetDoctorUser(ctx, id); err == nil {
		return entities.PractitionerFromUser(user), user.DoctorReviewIDs, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, nil, err
	}

	return nil, nil, apperrors.NewNotFoundError("practitioner not found")
}
