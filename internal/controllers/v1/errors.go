package v1

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/validation"
)

type httpError struct {
	Error        string                  `json:"error" example:"the ID in the URL is not a valid UUID"` // The error message
	Errors       []validation.FieldError `json:"errors,omitempty"`                                      // The fields that failed validation, if any
	ExpenseCount *int64                  `json:"expenseCount,omitempty" example:"3"`                    // The number of expenses that block deleting a category
}

// newHTTPError returns the response body for an error.
func newHTTPError(err error) httpError {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return httpError{
			Error:  validation.ErrValidation.Error(),
			Errors: validationErr.Fields,
		}
	}

	e := httpError{Error: err.Error()}

	var inUse *models.CategoryInUseError
	if errors.As(err, &inUse) {
		e.Error = models.ErrCategoryHasExpenses.Error()
		e.ExpenseCount = &inUse.ExpenseCount
	}

	return e
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

var (
	errPageInvalid  = errors.New("the page parameter must be 1 or larger")
	errLimitInvalid = errors.New("the limit parameter must be between 1 and 1000")
	errHourInvalid  = errors.New("the hour parameter must be between 0 and 23")
)
