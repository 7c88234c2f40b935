package services

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	"github.com/farishtaa/carefinder/internal/infrastructure/observability"
	"github.com/farishtaa/carefinder/pkg/specialty"
)

// EnrichmentService backfills the hospital store from the external geodata
// source. It only ever runs on the detached background path, so every failure
// is logged and swallowed; the next search over the same area retries
// naturally.
type EnrichmentService struct {
	provider     providers.FacilityDataProvider
	hospitalRepo repositories.HospitalRepository
	index        repositories.PractitionerIndexRepository
	metrics      *observability.Metrics
}

// NewEnrichmentService creates a new enrichment service. index and metrics
// may be nil.
func NewEnrichmentService(
	provider providers.FacilityDataProvider,
	hospitalRepo repositories.HospitalRepository,
	index repositories.PractitionerIndexRepository,
	metrics *observability.Metrics,
) *EnrichmentService {
	return &EnrichmentService{
		provider:     provider,
		hospitalRepo: hospitalRepo,
		index:        index,
		metrics:      metrics,
	}
}

// Run fetches facilities near the point and upserts each into the hospital
// store. The returned error covers only the fetch; per-node upsert failures
// are logged and skipped so one bad node cannot sink the batch.
func (s *EnrichmentService) Run(ctx context.Context, lat, lng, radiusMeters float64) error {
	logger := observability.LoggerFromContext(ctx)

	nodes, err := s.provider.FetchNearbyFacilities(ctx, lat, lng, radiusMeters)
	if err != nil {
		s.countError(ctx)
		return err
	}
	if len(nodes) == 0 {
		logger.Debug().
			Float64("lat", lat).Float64("lng", lng).
			Msg("no facilities found nearby")
		return nil
	}

	for _, node := range nodes {
		if node.Name() == "" {
			continue
		}

		hospital := buildHospital(node)
		if err := s.hospitalRepo.Upsert(ctx, hospital); err != nil {
			s.countError(ctx)
			logger.Warn().Err(err).Str("name", hospital.Name).Msg("failed to upsert enriched facility")
			continue
		}

		if s.metrics != nil {
			s.metrics.EnrichmentUpsert.Add(ctx, 1)
		}

		if s.index != nil {
			if err := s.index.Index(ctx, entities.PractitionerFromHospital(hospital, 0)); err != nil {
				logger.Warn().Err(err).Str("name", hospital.Name).Msg("failed to index enriched facility")
			}
		}
	}

	return nil
}

// buildHospital converts a raw geodata node into a hospital entity. The
// specialty tags come from keyword classification of the facility name, so
// repeated passes over the same node produce an identical entity.
func buildHospital(node providers.FacilityNode) *entities.Hospital {
	facilityType := node.Tags["amenity"]
	if facilityType == "" {
		facilityType = node.Tags["healthcare"]
	}
	if facilityType == "" {
		facilityType = "doctor"
	}

	return &entities.Hospital{
		Name:        node.Name(),
		Type:        facilityType,
		Specialties: specialty.Classify(node.Name()),
		Address: entities.Address{
			Street:   node.Tags["addr:full"],
			District: node.Tags["addr:district"],
			State:    node.Tags["addr:state"],
			Postcode: node.Tags["addr:postcode"],
		},
		Location: entities.Location{
			Latitude:  node.Lat,
			Longitude: node.Lon,
		},
	}
}

func (s *EnrichmentService) countError(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.EnrichmentErrors.Add(ctx, 1)
	}
}
