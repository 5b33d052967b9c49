// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go_hsk_flashcard/internal/model"
)

// HandleError maps an application error to a JSON error response.
func HandleError(w http.ResponseWriter, err error) {
	statusCode := MapErrorToStatusCode(err)
	if statusCode == http.StatusInternalServerError {
		slog.Error("Unhandled error", "error", err)
		RespondWithJSON(w, statusCode, model.APIError{Message: "internal server error"})
		return
	}
	RespondWithJSON(w, statusCode, model.APIError{Message: err.Error()})
}

// MapErrorToStatusCode translates the sentinel errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrDataSourceMissing):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrNoPriorPatches),
		errors.Is(err, model.ErrEmptyRevision):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, model.ErrSessionFinished):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON writes payload as a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"error encoding response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
