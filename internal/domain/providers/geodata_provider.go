package providers

import "context"

// FacilityNode is a raw tagged node from the external geodata source.
type FacilityNode struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Name returns the node's name tag, empty when absent.
func (n FacilityNode) Name() string {
	return n.Tags["name"]
}

// FacilityDataProvider queries an external open-data source for healthcare
// facilities near a point. Implementations are stateless; failures are the
// caller's to log and discard, since the only caller is the detached
// enrichment path.
type FacilityDataProvider interface {
	FetchNearbyFacilities(ctx context.Context, lat, lng, radiusMeters float64) ([]FacilityNode, error)
}
