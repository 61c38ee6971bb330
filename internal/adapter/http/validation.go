package http

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"loan-portal/internal/domain/validation"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

// NewValidator checks request shape only; value rules live in the domain
// validators run by the use cases.
func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names so details match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "eqfield":
			if e.Param() == "Password" {
				out = append(out, FieldError{Field: field, Message: "Passwords do not match"})
				continue
			}
			out = append(out, FieldError{Field: field, Message: "must match " + e.Param()})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

func validationResponse(details []FieldError) ErrorResponse {
	msg := "validation failed"
	if len(details) > 0 {
		msg = details[0].Message
	}
	return ErrorResponse{Error: msg, Details: details}
}

func fromDomain(ve *validation.Error) ErrorResponse {
	return ErrorResponse{Error: ve.Message, Details: []FieldError{{Field: ve.Field, Message: ve.Message}}}
}
