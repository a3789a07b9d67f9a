// Package validate wraps go-playground/validator for HTTP request models.
// Business rules live in internal/rules; this only rejects structurally
// malformed request bodies at the transport edge.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct валидирует структуру по validate-тегам и возвращает
// человекочитаемую ошибку по первому нарушенному полю.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}

	fe := vErrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("field %q is required", field)
	case "min":
		return fmt.Errorf("field %q must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Errorf("field %q must be at most %s characters", field, fe.Param())
	default:
		return fmt.Errorf("field %q failed validation %q", field, fe.Tag())
	}
}
