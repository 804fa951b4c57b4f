package models

import (
	"errors"
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Expense struct {
	DefaultModel
	Title      string          `gorm:"size:255;not null"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8);not null"`
	Date       types.Date      `gorm:"index;not null"`
	CategoryID uuid.UUID       `gorm:"type:char(36);index;not null"`
	Category   *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Notes      *string
}

func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Notes != nil {
		notes := strings.TrimSpace(*e.Notes)
		e.Notes = &notes
		if notes == "" {
			e.Notes = nil
		}
	}

	if e.Title == "" {
		return ErrExpenseTitleEmpty
	}

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	return e.checkIntegrity(tx)
}

// checkIntegrity verifies that the referenced category exists.
func (e *Expense) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&Category{}, e.CategoryID).Error
	if errors.Is(err, ErrResourceNotFound) {
		return ErrExpenseCategoryNotFound
	}

	return err
}

// Store creates or updates the expense. The category association is
// never written.
func (e *Expense) Store(db *gorm.DB) error {
	return db.Omit(clause.Associations).Save(e).Error
}

// ExpenseFilter selects expenses by category and an inclusive date range.
// Zero values do not filter.
type ExpenseFilter struct {
	CategoryID uuid.UUID
	From       types.Date
	Until      types.Date
}

// Apply adds the filter conditions to the query.
func (f ExpenseFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID != uuid.Nil {
		q = q.Where("expenses.category_id = ?", f.CategoryID)
	}

	if !f.From.IsZero() {
		q = q.Where("expenses.date >= date(?)", f.From)
	}

	// The until date is included, so everything before the next day matches
	if !f.Until.IsZero() {
		q = q.Where("expenses.date < date(?)", f.Until.AddDays(1))
	}

	return q
}
