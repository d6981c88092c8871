package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lealre/comments-backend/internal/mongodb"
)

const maxBodyBytes = 1 << 20

// internalErrorBody is sent when a payload cannot be encoded.
var internalErrorBody = []byte(`{"error":"Internal server error"}`)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) error {
	response, err := json.Marshal(&payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(internalErrorBody)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)

	return nil
}

func respondWithError(w http.ResponseWriter, code int, msg string) error {
	return respondWithJSON(w, code, ErrorResponse{Error: msg})
}

// readDocument decodes the request body, which must be a single JSON object.
func readDocument(w http.ResponseWriter, r *http.Request) (mongodb.Document, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return mongodb.ParseDocument(body)
}

// getErrorStatusCode safely checks if an error is in the ErrorMap by iterating through it
// and using errors.Is() to match errors. This prevents panics when non-hashable errors
// (like MongoDB errors) are passed as map keys.
func getErrorStatusCode(errMap map[error]int, err error) (int, bool) {
	for predefinedErr, statusCode := range errMap {
		if errors.Is(err, predefinedErr) {
			return statusCode, true
		}
	}
	return 0, false
}
