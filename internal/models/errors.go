package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrCategoryNameNotUnique = errors.New("category with this name already exists")
	ErrCategoryHasExpenses   = errors.New("cannot delete category with existing expenses")
)

var (
	ErrExpenseCategoryNotFound  = errors.New("category not found")
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")
	ErrExpenseTitleEmpty        = errors.New("expense title must not be empty")
)

var ErrUserNameRequired = errors.New("name is required")

// CategoryInUseError is returned when a category cannot be deleted because
// expenses reference it.
type CategoryInUseError struct {
	ExpenseCount int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("%s: %d expenses reference it", ErrCategoryHasExpenses, e.ExpenseCount)
}

func (e *CategoryInUseError) Unwrap() error {
	return ErrCategoryHasExpenses
}
