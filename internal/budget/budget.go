// Package budget derives budget metrics from the spending of a month and
// the budget settings.
package budget

import (
	"github.com/shopspring/decimal"
)

// Alert levels
const (
	AlertNone    = "none"
	AlertWarning = "warning"
	AlertOver    = "over"
)

var (
	hundred     = decimal.NewFromInt(100)
	nearPercent = decimal.NewFromInt(80)
)

// Metrics are the budget figures for one month.
type Metrics struct {
	Balance       decimal.Decimal `json:"balance" example:"38000"`                        // Income minus spending
	Remaining     decimal.Decimal `json:"remaining" example:"18000"`                      // Spending limit minus spending
	BudgetUsedPct decimal.Decimal `json:"budgetUsedPct" example:"40"`                     // Spending in percent of the limit, one decimal place
	ProgressPct   decimal.Decimal `json:"progressPct" example:"40"`                       // BudgetUsedPct, but at most 100
	OverBudget    bool            `json:"overBudget" example:"false"`                     // Spending exceeds the limit
	NearBudget    bool            `json:"nearBudget" example:"false"`                     // At least 80 and less than 100 percent of the limit is used
	Alert         string          `json:"alert" example:"none" enums:"none,warning,over"` // none below 80%, warning up to the limit, over beyond it
}

// Calculate returns the metrics for spending against income and limit.
//
// A limit of zero or less is used up by any spending.
func Calculate(spending, income, limit decimal.Decimal) Metrics {
	m := Metrics{
		Balance:    income.Sub(spending),
		Remaining:  limit.Sub(spending),
		OverBudget: spending.GreaterThan(limit),
	}

	// Thresholds apply to the exact share, only the reported value is rounded
	var used decimal.Decimal
	switch {
	case limit.IsPositive():
		used = spending.Mul(hundred).Div(limit)
	case spending.IsPositive():
		used = hundred
	default:
		used = decimal.Zero
	}

	m.BudgetUsedPct = used.Round(1)
	m.NearBudget = used.GreaterThanOrEqual(nearPercent) && used.LessThan(hundred)
	m.ProgressPct = decimal.Min(m.BudgetUsedPct, hundred)

	switch {
	case m.OverBudget:
		m.Alert = AlertOver
	case used.GreaterThanOrEqual(nearPercent):
		m.Alert = AlertWarning
	default:
		m.Alert = AlertNone
	}

	return m
}
