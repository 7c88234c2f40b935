package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/farishtaa/carefinder/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondAppError maps a service error onto its HTTP status, collapsing
// internal detail to a generic message.
func respondAppError(w http.ResponseWriter, err error) {
	respondWithError(w, apperrors.HTTPStatus(err), apperrors.PublicMessage(err))
}
