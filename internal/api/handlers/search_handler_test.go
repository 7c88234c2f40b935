package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farishtaa/carefinder/internal/api/handlers"
	"github.com/farishtaa/carefinder/internal/application/services"
	"github.com/farishtaa/carefinder/internal/domain/entities"
	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

type stubSearchService struct {
	lastReq services.SearchRequest
	results []*entities.PractitionerRecord
	err     error
}

func (s *stubSearchService) Search(ctx context.Context, req services.SearchRequest) ([]*entities.PractitionerRecord, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func searchRequest(specialty, body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/search/"+specialty, strings.NewReader(body))
	req.SetPathValue("specialty", specialty)
	return req
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("returns the merged result list", func(t *testing.T) {
		service := &stubSearchService{results: []*entities.PractitionerRecord{
			{ID: "doc-1", DisplayName: "Dr. Asha Verma", SourceVariant: entities.SourceCuratedDoctor},
			{ID: "hosp-1", DisplayName: "City Heart Care", SourceVariant: entities.SourceCuratedHospital},
		}}
		handler := handlers.NewSearchHandler(service)

		w := httptest.NewRecorder()
		handler.Search(w, searchRequest("cardiologist", `{"lat":23.25,"lng":77.41,"radius":5000}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cardiologist", service.lastReq.Specialty)
		assert.Equal(t, 23.25, service.lastReq.Latitude)
		assert.Equal(t, 5000.0, service.lastReq.RadiusMeters)

		var response struct {
			Data []*entities.PractitionerRecord `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "doc-1", response.Data[0].ID)
	})

	t.Run("invalid body yields 400", func(t *testing.T) {
		handler := handlers.NewSearchHandler(&stubSearchService{})

		w := httptest.NewRecorder()
		handler.Search(w, searchRequest("cardiologist", `{not json`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		service := &stubSearchService{err: apperrors.NewValidationError("invalid coordinates")}
		handler := handlers.NewSearchHandler(service)

		w := httptest.NewRecorder()
		handler.Search(w, searchRequest("cardiologist", `{"lat":120,"lng":77.41}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "invalid coordinates", response["error"])
	})

	t.Run("internal errors collapse to a generic message", func(t *testing.T) {
		service := &stubSearchService{err: apperrors.NewInternalError("pq: relation doctors does not exist", nil)}
		handler := handlers.NewSearchHandler(service)

		w := httptest.NewRecorder()
		handler.Search(w, searchRequest("cardiologist", `{"lat":23.25,"lng":77.41}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "internal server error", response["error"])
	})

	t.Run("missing specialty yields 400", func(t *testing.T) {
		handler := handlers.NewSearchHandler(&stubSearchService{})

		req := httptest.NewRequest("POST", "/api/search/", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.Search(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
