package geodata

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/providers"
)

// MockFacilityDataProvider returns canned facility nodes, for development and
// tests where the real Overpass API is unavailable.
type MockFacilityDataProvider struct {
	Nodes []providers.FacilityNode
	Err   error

	// Calls records the queried points, newest last.
	Calls []providers.FacilityNode
}

// NewMockFacilityDataProvider creates a provider that serves the given nodes.
func NewMockFacilityDataProvider(nodes ...providers.FacilityNode) *MockFacilityDataProvider {
	return &MockFacilityDataProvider{Nodes: nodes}
}

// FetchNearbyFacilities returns the canned nodes, dropping unnamed ones like
// the real provider does.
func (m *MockFacilityDataProvider) FetchNearbyFacilities(ctx context.Context, lat, lng, radiusMeters float64) ([]providers.FacilityNode, error) {
	m.Calls = append(m.Calls, providers.FacilityNode{Lat: lat, Lon: lng})
	if m.Err != nil {
		return nil, m.Err
	}

	named := make([]providers.FacilityNode, 0, len(m.Nodes))
	for _, node := range m.Nodes {
		if node.Name() == "" {
			continue
		}
		named = append(named, node)
	}
	return named, nil
}
