package analytics

import (
	"context"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SpendingTotals struct {
	TotalCategories   int   `json:"totalCategories" example:"3"`    // Number of categories with spending in the range
	TotalTransactions int64 `json:"totalTransactions" example:"17"` // Number of expenses in the range
}

// SpendingReport is the spending breakdown by category for a date range.
type SpendingReport struct {
	SpendingData  []CategorySpending `json:"spendingData"`                 // Spending per category
	TotalSpending decimal.Decimal    `json:"totalSpending" example:"12.5"` // Sum of all expenses in the range
	DateRange     DateRange          `json:"dateRange"`                    // The range the report covers
	Summary       SpendingTotals     `json:"summary"`                      // Totals for the range
}

// Spending computes the breakdown for the range.
func Spending(ctx context.Context, db *gorm.DB, r DateRange) (SpendingReport, error) {
	db = db.WithContext(ctx)

	var expenses []models.Expense
	err := r.Filter().Apply(db.Model(&models.Expense{})).
		Select("category_id", "amount").
		Find(&expenses).Error
	if err != nil {
		return SpendingReport{}, err
	}

	var categories []models.Category
	err = db.Find(&categories).Error
	if err != nil {
		return SpendingReport{}, err
	}

	spending, total := Aggregate(expenses, categories)

	return SpendingReport{
		SpendingData:  spending,
		TotalSpending: total,
		DateRange:     r,
		Summary: SpendingTotals{
			TotalCategories:   len(spending),
			TotalTransactions: int64(len(expenses)),
		},
	}, nil
}
