// internal/model/error.go
package model

import "errors"

// Application-level sentinel errors. Repositories and services wrap these
// so callers can branch with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternalServer    = errors.New("internal server error")
	ErrDataSourceMissing = errors.New("vocabulary file not found for level")
	ErrNoPriorPatches    = errors.New("no previous patches to test")
	ErrEmptyRevision     = errors.New("revision list is empty")
	ErrSessionActive     = errors.New("a quiz session is already running")
	ErrSessionFinished   = errors.New("quiz session already finished")
)

// APIError is the JSON error response body of the web shell.
type APIError struct {
	Message string `json:"message"`
}
