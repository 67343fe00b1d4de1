package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/constants"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

// InitValidator initializes the validator.
func InitValidator() {
	validate = validator.New()

	// Report json tag names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	log.Info().Msg("Validator initialized")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// DecodeJSON decodes a JSON request body into the provided struct
// with improved error handling and size limits.
func DecodeJSON(r *http.Request, v interface{}) error {
	// Limit the size of the request body
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case err.Error() == "http: request body too large":
			return NewBadRequestError("Request body too large")

		case errors.Is(err, io.EOF):
			return NewBadRequestError("Request body must not be empty")

		case errors.Is(err, io.ErrUnexpectedEOF):
			return NewBadRequestError("Request body contains malformed JSON")

		case errors.As(err, &syntaxError):
			return NewBadRequestError(fmt.Sprintf("Request body contains malformed JSON (at position %d)", syntaxError.Offset))

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return NewValidationError(unmarshalTypeError.Field, fmt.Sprintf("Must be a %s", unmarshalTypeError.Type.String()))
			}
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", unmarshalTypeError.Offset))

		case errors.As(err, &invalidUnmarshalError):
			return NewInternalServerError(err)

		default:
			return NewBadRequestError(fmt.Sprintf("Error decoding JSON: %s", err.Error()))
		}
	}

	// Check for additional JSON data that would be ignored
	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}

	return nil
}

// ValidateStruct validates a struct using the validator.
func ValidateStruct(v interface{}) error {
	if validate == nil {
		InitValidator()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		e := validationErrors[0]
		return NewValidationError(e.Field(), getErrorMessage(e))
	}

	return NewBadRequestError(err.Error())
}

// DecodeAndValidate decodes a JSON request body and validates it.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// getErrorMessage returns a user-friendly error message for a validation error.
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", e.Field())
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", e.Param())
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", e.Tag())
	}
}

// IsValidEmail checks if a string is a valid email address.
func IsValidEmail(email string) bool {
	return GetValidator().Var(email, "email") == nil
}
