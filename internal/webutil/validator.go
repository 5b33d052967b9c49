// internal/webutil/validator.go
package webutil

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"go_hsk_flashcard/internal/model"
)

// Validator is the application-wide validator instance.
var Validator *validator.Validate

func init() {
	Validator = validator.New()

	// Report field names by their JSON tag, not the Go identifier.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError converts validator errors to an ErrInvalidInput-wrapped
// error with a readable message.
func ValidationError(errs validator.ValidationErrors) error {
	var messages []string
	for _, err := range errs {
		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' rule", err.Field(), err.Tag()))
	}
	return fmt.Errorf("%s: %w", strings.Join(messages, "; "), model.ErrInvalidInput)
}
