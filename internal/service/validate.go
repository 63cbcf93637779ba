package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/diagnosis/sophies-tours/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateStruct turns validator failures into one domain.ErrValidation
// listing the offending json fields.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "gt":
			invalid = append(invalid, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "min":
			invalid = append(invalid, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			invalid = append(invalid, fe.Field()+" is invalid")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(invalid, "; "))
}
