package geodata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farishtaa/carefinder/internal/domain/providers"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"
	defaultHTTPTimeout = 10 * time.Second
)

// OverpassProvider queries the OpenStreetMap Overpass API for healthcare
// facilities near a point.
type OverpassProvider struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.FacilityDataProvider = (*OverpassProvider)(nil)

// NewOverpassProvider creates a new Overpass provider.
func NewOverpassProvider(baseURL string, timeout time.Duration) *OverpassProvider {
	return NewOverpassProviderWithClient(baseURL, &http.Client{Timeout: orDefault(timeout)})
}

// NewOverpassProviderWithClient allows overriding the HTTP client (used for tests).
func NewOverpassProviderWithClient(baseURL string, httpClient *http.Client) *OverpassProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOverpassURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OverpassProvider{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func orDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultHTTPTimeout
	}
	return timeout
}

// FetchNearbyFacilities queries nodes tagged amenity=hospital, amenity=clinic
// or healthcare=doctor around the point. Nodes without a name tag are dropped.
func (p *OverpassProvider) FetchNearbyFacilities(ctx context.Context, lat, lng, radiusMeters float64) ([]providers.FacilityNode, error) {
	query := buildQuery(lat, lng, radiusMeters)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, apperrors.NewExternalError("failed to build overpass request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("overpass request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("overpass request returned status %d", resp.StatusCode), nil)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode overpass response", err)
	}

	nodes := make([]providers.FacilityNode, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		node := providers.FacilityNode{
			Lat:  element.Lat,
			Lon:  element.Lon,
			Tags: element.Tags,
		}
		if node.Name() == "" {
			continue
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// buildQuery renders the Overpass QL payload. The three tag predicates are
// alternatives; out body requests full element bodies.
func buildQuery(lat, lng, radiusMeters float64) string {
	return fmt.Sprintf(`
      [out:json];
      (
        node["amenity"="hospital"](around:%[1]v, %[2]v, %[3]v);
        node["amenity"="clinic"](around:%[1]v, %[2]v, %[3]v);
        node["healthcare"="doctor"](around:%[1]v, %[2]v, %[3]v);
      );
      out body;
    `, radiusMeters, lat, lng)
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}
