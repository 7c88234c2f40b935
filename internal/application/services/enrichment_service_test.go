package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farishtaa/carefinder/internal/adapters/providers/geodata"
	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/providers"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

func TestEnrichmentService_Run(t *testing.T) {
	t.Run("classifies and upserts named facilities", func(t *testing.T) {
		provider := geodata.NewMockFacilityDataProvider(
			providers.FacilityNode{
				Lat: 23.25, Lon: 77.41,
				Tags: map[string]string{
					"name":          "City Heart Care",
					"amenity":       "clinic",
					"addr:full":     "12 Lake Road",
					"addr:district": "Bhopal",
					"addr:state":    "Madhya Pradesh",
					"addr:postcode": "462001",
				},
			},
		)
		hospitalRepo := new(MockHospitalRepository)

		var upserted *entities.Hospital
		hospitalRepo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { upserted = args.Get(1).(*entities.Hospital) }).
			Return(nil)

		service := services.NewEnrichmentService(provider, hospitalRepo, nil, nil)

		err := service.Run(context.Background(), 23.25, 77.41, 5000)

		assert.NoError(t, err)
		hospitalRepo.AssertExpectations(t)
		if assert.NotNil(t, upserted) {
			assert.Equal(t, "City Heart Care", upserted.Name)
			assert.Equal(t, "clinic", upserted.Type)
			assert.Equal(t, []string{"cardiologist"}, upserted.Specialties)
			assert.Equal(t, "12 Lake Road", upserted.Address.Street)
			assert.Equal(t, "Bhopal", upserted.Address.District)
			assert.Equal(t, "462001", upserted.Address.Postcode)
			assert.Equal(t, 23.25, upserted.Location.Latitude)
			assert.Equal(t, 77.41, upserted.Location.Longitude)
		}
	})

	t.Run("falls back through healthcare tag to doctor type", func(t *testing.T) {
		provider := geodata.NewMockFacilityDataProvider(
			providers.FacilityNode{Lat: 1, Lon: 2, Tags: map[string]string{"name": "Skin and Care Clinic", "healthcare": "dermatology"}},
			providers.FacilityNode{Lat: 3, Lon: 4, Tags: map[string]string{"name": "Dr. Gupta"}},
		)
		hospitalRepo := new(MockHospitalRepository)

		var types []string
		hospitalRepo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { types = append(types, args.Get(1).(*entities.Hospital).Type) }).
			Return(nil)

		service := services.NewEnrichmentService(provider, hospitalRepo, nil, nil)

		assert.NoError(t, service.Run(context.Background(), 1, 2, 1000))
		assert.Equal(t, []string{"dermatology", "doctor"}, types)
	})

	t.Run("skips unnamed nodes", func(t *testing.T) {
		provider := geodata.NewMockFacilityDataProvider(
			providers.FacilityNode{Lat: 1, Lon: 2, Tags: map[string]string{"amenity": "hospital"}},
		)
		hospitalRepo := new(MockHospitalRepository)

		service := services.NewEnrichmentService(provider, hospitalRepo, nil, nil)

		assert.NoError(t, service.Run(context.Background(), 1, 2, 1000))
		hospitalRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("one failed upsert does not sink the batch", func(t *testing.T) {
		provider := geodata.NewMockFacilityDataProvider(
			providers.FacilityNode{Lat: 1, Lon: 2, Tags: map[string]string{"name": "First Clinic"}},
			providers.FacilityNode{Lat: 3, Lon: 4, Tags: map[string]string{"name": "Second Clinic"}},
		)
		hospitalRepo := new(MockHospitalRepository)

		hospitalRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(h *entities.Hospital) bool {
			return h.Name == "First Clinic"
		})).Return(apperrors.NewInternalError("insert failed", nil))
		hospitalRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(h *entities.Hospital) bool {
			return h.Name == "Second Clinic"
		})).Return(nil)

		service := services.NewEnrichmentService(provider, hospitalRepo, nil, nil)

		assert.NoError(t, service.Run(context.Background(), 1, 2, 1000))
		hospitalRepo.AssertExpectations(t)
	})

	t.Run("returns the fetch error", func(t *testing.T) {
		provider := &geodata.MockFacilityDataProvider{Err: apperrors.NewExternalError("overpass timeout", nil)}
		hospitalRepo := new(MockHospitalRepository)

		service := services.NewEnrichmentService(provider, hospitalRepo, nil, nil)

		err := service.Run(context.Background(), 1, 2, 1000)
		assert.Error(t, err)
		hospitalRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("re-enrichment indexes the persisted row id", func(t *testing.T) {
		node := providers.FacilityNode{
			Lat: 23.25, Lon: 77.41,
			Tags: map[string]string{"name": "City Heart Care", "amenity": "clinic"},
		}
		hospitalRepo := new(MockHospitalRepository)

		// The conflict upsert keeps the first row's id and scans it back,
		// so later passes see the stored id rather than the fresh uuid
		// they inserted with.
		var rowID string
		hospitalRepo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				h := args.Get(1).(*entities.Hospital)
				if rowID == "" {
					rowID = h.ID
				}
				h.ID = rowID
			}).
			Return(nil)

		index := new(MockIndexRepository)
		var indexedIDs []string
		index.On("Index", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				indexedIDs = append(indexedIDs, args.Get(1).(*entities.PractitionerRecord).ID)
			}).
			Return(nil)

		service := services.NewEnrichmentService(geodata.NewMockFacilityDataProvider(node), hospitalRepo, index, nil)
		assert.NoError(t, service.Run(context.Background(), 23.25, 77.41, 5000))
		assert.NoError(t, service.Run(context.Background(), 23.25, 77.41, 5000))

		if assert.Len(t, indexedIDs, 2) {
			assert.Equal(t, rowID, indexedIDs[0])
			assert.Equal(t, rowID, indexedIDs[1])
		}
	})

	t.Run("repeated runs produce identical entities", func(t *testing.T) {
		node := providers.FacilityNode{
			Lat: 23.25, Lon: 77.41,
			Tags: map[string]string{"name": "City Heart Care", "amenity": "clinic"},
		}
		hospitalRepo := new(MockHospitalRepository)

		var seen []*entities.Hospital
		hospitalRepo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { seen = append(seen, args.Get(1).(*entities.Hospital)) }).
			Return(nil)

		service := services.NewEnrichmentService(geodata.NewMockFacilityDataProvider(node), hospitalRepo, nil, nil)
		assert.NoError(t, service.Run(context.Background(), 23.25, 77.41, 5000))
		assert.NoError(t, service.Run(context.Background(), 23.25, 77.41, 5000))

		if assert.Len(t, seen, 2) {
			assert.Equal(t, seen[0], seen[1])
		}
	})
}
