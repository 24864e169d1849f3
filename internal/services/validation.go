package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("game_type", func(fl validator.FieldLevel) bool {
		return models.GameType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	return v
}

// validateRequest checks the validate tags of a request and returns the first
// failure as an ErrInvalid.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("invalid request: %v", err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return invalid("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return invalid("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return invalid("%s may not be blank", fe.Field())
		}
		return invalid("%s must be at least %s", fe.Field(), fe.Param())
	case "game_type":
		return invalid("%s must be one of: %s", fe.Field(), joinValues(models.GameTypes))
	case "category":
		return invalid("%s must be one of: %s", fe.Field(), joinValues(models.YahtzeeCategories))
	default:
		return invalid("%s is invalid", fe.Field())
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
