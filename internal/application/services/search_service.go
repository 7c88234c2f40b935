package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

const (
	defaultSearchRadiusMeters = 15000

	// enrichmentTimeout bounds the detached background pass so an
	// unresponsive geodata upstream cannot pin goroutines forever.
	enrichmentTimeout = 45 * time.Second

	// enrichmentDedupTTL spaces out background passes over the same area.
	enrichmentDedupTTL = 10 * time.Minute
)

// Enricher runs a background facility backfill for a search area.
type Enricher interface {
	Run(ctx context.Context, lat, lng, radiusMeters float64) error
}

// SearchRequest carries a validated specialty search.
type SearchRequest struct {
	Specialty    string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// SearchService answers specialty searches from the three practitioner
// sources and triggers facility enrichment for the searched area.
type SearchService struct {
	doctorRepo   repositories.DoctorRepository
	hospitalRepo repositories.HospitalRepository
	userRepo     repositories.UserRepository
	cache        providers.CacheProvider
	enricher     Enricher
	metrics      *observability.Metrics
}

// NewSearchService creates a new search service. cache, enricher and metrics
// may be nil, in which case enrichment runs unthrottled or not at all.
func NewSearchService(
	doctorRepo repositories.DoctorRepository,
	hospitalRepo repositories.HospitalRepository,
	userRepo repositories.UserRepository,
	cache providers.CacheProvider,
	enricher Enricher,
	metrics *observability.Metrics,
) *SearchService {
	return &SearchService{
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		cache:        cache,
		enricher:     enricher,
		metrics:      metrics,
	}
}

// Search queries the curated doctor, hospital and registered doctor stores
// concurrently and returns their results concatenated in that order. Results
// within each source keep the store's nearest-first ordering; no cross-source
// merge or dedup is applied. A background enrichment pass for the searched
// area is kicked off before returning and never delays the response.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]*entities.PractitionerRecord, error) {
	specialtyName := strings.TrimSpace(req.Specialty)
	if specialtyName == "" {
		return nil, apperrors.NewValidationError("specialty is required")
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, apperrors.NewValidationError("invalid coordinates")
	}

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = defaultSearchRadiusMeters
	}

	query := repositories.GeoQuery{
		Specialty:    specialtyName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
	}

	var (
		doctors      []*entities.Doctor
		hospitalHits []repositories.HospitalHit
		userDoctors  []*entities.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctors, err = s.doctorRepo.FindNearbyBySpecialty(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		hospitalHits, err = s.hospitalRepo.FindNearbyBySpecialty(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		userDoctors, err = s.userRepo.FindDoctorsNearbyBySpecialty(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*entities.PractitionerRecord, 0, len(doctors)+len(hospitalHits)+len(userDoctors))
	for _, d := range doctors {
		results = append(results, entities.PractitionerFromDoctor(d))
	}
	for _, hit := range hospitalHits {
		results = append(results, entities.PractitionerFromHospital(hit.Hospital, hit.DistanceMeters))
	}
	for _, u := range userDoctors {
		results = append(results, entities.PractitionerFromUser(u))
	}

	if s.metrics != nil {
		s.metrics.SearchResults.Add(ctx, int64(len(results)))
	}

	s.triggerEnrichment(ctx, req.Latitude, req.Longitude, radius)

	return results, nil
}

// triggerEnrichment starts a detached background pass over the searched area.
// The goroutine gets its own deadline, decoupled from the request context, so
// the backfill survives the response being written. A cache guard keyed on
// the rounded area keeps concurrent searches from duplicating the work.
func (s *SearchService) triggerEnrichment(ctx context.Context, lat, lng, radiusMeters float64) {
	if s.enricher == nil {
		return
	}

	logger := observability.LoggerFromContext(ctx)
	bg := context.WithoutCancel(ctx)

	go func() {
		runCtx, cancel := context.WithTimeout(bg, enrichmentTimeout)
		defer cancel()

		if s.cache != nil {
			key := enrichmentAreaKey(lat, lng, radiusMeters)
			acquired, err := s.cache.SetNX(runCtx, key, []byte("1"), int(enrichmentDedupTTL.Seconds()))
			if err != nil {
				logger.Warn().Err(err).Msg("enrichment dedup check failed, proceeding anyway")
			} else if !acquired {
				return
			}
		}

		if err := s.enricher.Run(runCtx, lat, lng, radiusMeters); err != nil {
			logger.Warn().Err(err).
				Float64("lat", lat).Float64("lng", lng).
				Msg("background enrichment failed")
		}
	}()
}

// enrichmentAreaKey rounds coordinates to ~100m so nearby searches share one
// dedup slot.
func enrichmentAreaKey(lat, lng, radiusMeters float64) string {
	return fmt.Sprintf("enrich:area:%.3f:%.3f:%.0f", lat, lng, radiusMeters)
}
