// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("stock_status", validateStockStatus)
	validate.RegisterValidation("rating_point", validateRatingPoint)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStockStatus(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "in" || v == "out"
}

func validateRatingPoint(fl validator.FieldLevel) bool {
	p := fl.Field().Int()
	return p >= 1 && p <= 5
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "stock_status":
		return "Stock status must be either 'in' or 'out'"
	case "rating_point":
		return "Rating point must be between 1 and 5"
	default:
		return e.Field() + " is invalid"
	}
}
