// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go_hsk_flashcard/internal/model"
)

// DecodeAndValidate parses a JSON request body into dst and runs the shared
// validator over it.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", model.ErrInvalidInput)
	}
	if err := Validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ValidationError(verrs)
		}
		return fmt.Errorf("validation failed: %w", model.ErrInvalidInput)
	}
	return nil
}
