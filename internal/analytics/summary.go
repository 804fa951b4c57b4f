package analytics

import (
	"context"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RecentCount is the number of expenses in the dashboard summary.
const RecentCount = 5

// MonthTotal is the spending in one calendar month.
type MonthTotal struct {
	Month types.Month     `json:"month" example:"2024-03"` // The month
	Sum   decimal.Decimal `json:"sum" example:"1200.5"`    // Sum of all expenses
	Count int64           `json:"count" example:"14"`      // Number of expenses
}

// DashboardSummary compares the current month to the previous one.
type DashboardSummary struct {
	CurrentMonth       MonthTotal
	PreviousMonth      MonthTotal
	SpendingChange     decimal.Decimal
	AverageTransaction decimal.Decimal
	Recent             []models.Expense
}

// Summary computes the dashboard summary for the month that contains now.
//
// The month totals and the recent expenses are read concurrently. The first
// failing query cancels the others.
func Summary(ctx context.Context, db *gorm.DB, now time.Time) (DashboardSummary, error) {
	current := types.MonthOf(now)
	previous := current.AddDate(0, -1)

	var s DashboardSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.CurrentMonth, err = MonthSpending(ctx, db, current)
		return
	})

	g.Go(func() (err error) {
		s.PreviousMonth, err = MonthSpending(ctx, db, previous)
		return
	})

	g.Go(func() error {
		return db.WithContext(ctx).
			Preload("Category").
			Order("date DESC, created_at DESC").
			Limit(RecentCount).
			Find(&s.Recent).Error
	})

	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}

	s.SpendingChange = PercentChange(s.CurrentMonth.Sum, s.PreviousMonth.Sum)
	s.AverageTransaction = Average(s.CurrentMonth.Sum, s.CurrentMonth.Count)

	return s, nil
}

// MonthSpending returns the sum and number of the expenses in the month.
func MonthSpending(ctx context.Context, db *gorm.DB, month types.Month) (MonthTotal, error) {
	var expenses []models.Expense

	filter := models.ExpenseFilter{From: month.FirstDay(), Until: month.LastDay()}
	err := filter.Apply(db.WithContext(ctx).Model(&models.Expense{})).
		Select("amount").
		Find(&expenses).Error
	if err != nil {
		return MonthTotal{}, err
	}

	total := MonthTotal{Month: month, Count: int64(len(expenses))}
	for _, e := range expenses {
		total.Sum = total.Sum.Add(e.Amount)
	}

	return total, nil
}
