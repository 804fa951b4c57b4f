// Package validation checks user input against struct tags and collects every
// failing field instead of stopping at the first one.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrValidation is wrapped by every *Error.
var ErrValidation = errors.New("validation failed")

// FieldError describes why a single field is invalid.
type FieldError struct {
	Field   string `json:"field" example:"color"`                             // Name of the field as sent in the request
	Message string `json:"message" example:"color must be a valid hex color"` // Human readable description of the problem
}

// Error is the error form of a failed Result.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(messages, ", "))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// Result holds either a valid value or a non-empty list of field errors.
type Result[T any] struct {
	Value  T
	Errors []FieldError
}

// Valid reports if no field failed validation.
func (r Result[T]) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.Valid() {
		return nil
	}

	return &Error{Fields: r.Errors}
}

// Merge returns the result with fields added in front of the rule violations.
// fields describe values that could not be decoded at all, so rule violations
// reported for the same field are dropped.
func (r Result[T]) Merge(fields []FieldError) Result[T] {
	if len(fields) == 0 {
		return r
	}

	failed := make(map[string]bool, len(fields))
	for _, f := range fields {
		failed[f.Field] = true
	}

	merged := append([]FieldError{}, fields...)
	for _, e := range r.Errors {
		if !failed[e.Field] {
			merged = append(merged, e)
		}
	}

	r.Errors = merged
	return r
}

var (
	validate = newValidator()
	rgbColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Check validates the `validate` struct tags of value.
func Check[T any](value T) Result[T] {
	r := Result[T]{Value: value}

	err := validate.Struct(value)
	if err == nil {
		return r
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// InvalidValidationError means Check was called with a non-struct
		panic(err)
	}

	for _, e := range validationErrors {
		r.Errors = append(r.Errors, FieldError{
			Field:   e.Field(),
			Message: message(e),
		})
	}

	return r
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields with the name used in the JSON body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Struct-typed values are validated as their string representation,
	// with the zero value being the empty string
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		d := f.Interface().(decimal.Decimal)
		return d.String()
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		d := f.Interface().(types.Date)
		if d.IsZero() {
			return ""
		}
		return d.String()
	}, types.Date{})

	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		u := f.Interface().(ez_uuid.UUID)
		if u.IsNil() {
			return ""
		}
		return u.String()
	}, ez_uuid.UUID{})

	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		u := f.Interface().(uuid.UUID)
		if u == uuid.Nil {
			return ""
		}
		return u.String()
	}, uuid.UUID{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// #RGB or #RRGGBB, hexcolor also accepts an alpha channel
	_ = v.RegisterValidation("rgbcolor", func(fl validator.FieldLevel) bool {
		return rgbColor.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})

	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})

	return v
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field())
	case "hexcolor", "rgbcolor":
		return fmt.Sprintf("%s must be a valid hex color", e.Field())
	case "positive":
		return fmt.Sprintf("%s must be a positive number", e.Field())
	case "nonnegative":
		return fmt.Sprintf("%s must not be negative", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
