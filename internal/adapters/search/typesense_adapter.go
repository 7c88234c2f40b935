package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/farishtaa/carefinder/internal/domain/entities"
	"github.com/farishtaa/carefinder/internal/domain/repositories"
	tsclient "github.com/farishtaa/carefinder/internal/infrastructure/clients/typesense"
)

const collectionName = "practitioners"

// TypesenseAdapter implements the practitioner suggestion index.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.PractitionerIndexRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter.
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the practitioners collection exists.
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "display_name", Type: "string"},
			{Name: "specialties", Type: "string[]", Facet: pointer.True()},
			{Name: "source_variant", Type: "string", Facet: pointer.True()},
			{Name: "location", Type: "geopoint"},
		},
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts one practitioner record into the suggestion index.
func (a *TypesenseAdapter) Index(ctx context.Context, record *entities.PractitionerRecord) error {
	document := map[string]interface{}{
		"id":             record.ID,
		"display_name":   record.DisplayName,
		"specialties":    record.Specialties,
		"source_variant": record.SourceVariant,
		"location":       []float64{record.Location.Latitude, record.Location.Longitude},
	}

	if _, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index practitioner: %w", err)
	}

	return nil
}

// Suggest returns practitioners whose display name matches the prefix.
func (a *TypesenseAdapter) Suggest(ctx context.Context, prefix string, limit int) ([]*entities.PractitionerRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(prefix),
		QueryBy: pointer.String("display_name,specialties"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search practitioners: %w", err)
	}

	records := []*entities.PractitionerRecord{}
	if result.Hits == nil {
		return records, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		record := &entities.PractitionerRecord{}
		if val, ok := doc["id"].(string); ok {
			record.ID = val
		}
		if val, ok := doc["display_name"].(string); ok {
			record.DisplayName = val
		}
		if val, ok := doc["source_variant"].(string); ok {
			record.SourceVariant = val
		}
		if vals, ok := doc["specialties"].([]interface{}); ok {
			for _, v := range vals {
				if s, ok := v.(string); ok {
					record.Specialties = append(record.Specialties, s)
				}
			}
		}
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			if lat, ok := loc[0].(float64); ok {
				record.Location.Latitude = lat
			}
			if lng, ok := loc[1].(float64); ok {
				record.Location.Longitude = lng
			}
		}

		records = append(records, record)
	}

	return records, nil
}
