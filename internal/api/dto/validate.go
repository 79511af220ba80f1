package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/lpkia/helpdesk-service/pkg/util/errorutil"
)

var validate = validator.New()

// Validate checks a request struct against its tags and converts the first
// failure into a validation error with a short field-level message.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("invalid payload")
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", jsonName(fe.Field())))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", jsonName(fe.Field()), fe.Param()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", jsonName(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", jsonName(fe.Field())))
		}
	}
	return apperrors.NewValidationError(strings.Join(parts, "; "))
}

// jsonName converts the Go field name to its snake_case wire name.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
