// Package analytics aggregates expenses into spending reports. All reports
// are computed from the current state of the database on every call.
package analytics

import (
	"errors"
	"strings"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var ErrInvalidRange = errors.New("the start date must not be after the end date")

// Display values for expenses whose category does not exist.
const (
	UnknownName  = "Unknown"
	UnknownIcon  = "❓"
	UnknownColor = "#666666"
)

var hundred = decimal.NewFromInt(100)

// DateRange is an inclusive range of days.
type DateRange struct {
	StartDate types.Date `json:"startDate" example:"2024-03-01"` // First day of the range
	EndDate   types.Date `json:"endDate" example:"2024-03-31"`   // Last day of the range
}

// ResolveRange fills bounds that are not set with the first and last day
// of the month of today.
func ResolveRange(today types.Date, start, end types.Date) (DateRange, error) {
	month := types.MonthOf(today.Time())

	if start.IsZero() {
		start = month.FirstDay()
	}

	if end.IsZero() {
		end = month.LastDay()
	}

	if start.After(end) {
		return DateRange{}, ErrInvalidRange
	}

	return DateRange{StartDate: start, EndDate: end}, nil
}

// Filter returns the expense filter selecting the range.
func (r DateRange) Filter() models.ExpenseFilter {
	return models.ExpenseFilter{From: r.StartDate, Until: r.EndDate}
}

// CategorySpending is the spending for one category.
type CategorySpending struct {
	CategoryID       uuid.UUID       `json:"categoryId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the category
	CategoryName     string          `json:"categoryName" example:"Food"`                               // Name of the category
	CategoryIcon     string          `json:"categoryIcon" example:"🍔"`                                  // Icon of the category
	CategoryColor    string          `json:"categoryColor" example:"#FF6B6B"`                           // Color of the category
	TotalAmount      decimal.Decimal `json:"totalAmount" example:"12.5"`                                // Sum of all expenses
	TransactionCount int64           `json:"transactionCount" example:"1"`                              // Number of expenses
	Percentage       string          `json:"percentage" example:"100.0"`                                // Share of the total spending in percent, one decimal place
}

// Aggregate groups the expenses by category. The result is sorted by the
// total amount, largest first, and by name for equal totals.
func Aggregate(expenses []models.Expense, categories []models.Category) (spending []CategorySpending, total decimal.Decimal) {
	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	index := make(map[uuid.UUID]int)
	spending = make([]CategorySpending, 0)

	for _, e := range expenses {
		i, ok := index[e.CategoryID]
		if !ok {
			entry := CategorySpending{
				CategoryID:    e.CategoryID,
				CategoryName:  UnknownName,
				CategoryIcon:  UnknownIcon,
				CategoryColor: UnknownColor,
			}

			if c, ok := byID[e.CategoryID]; ok {
				entry.CategoryName = c.Name
				entry.CategoryIcon = c.Icon
				entry.CategoryColor = c.Color
			}

			spending = append(spending, entry)
			i = len(spending) - 1
			index[e.CategoryID] = i
		}

		spending[i].TotalAmount = spending[i].TotalAmount.Add(e.Amount)
		spending[i].TransactionCount++
		total = total.Add(e.Amount)
	}

	for i := range spending {
		spending[i].Percentage = Percentage(spending[i].TotalAmount, total)
	}

	slices.SortFunc(spending, func(a, b CategorySpending) int {
		if c := b.TotalAmount.Cmp(a.TotalAmount); c != 0 {
			return c
		}

		if c := strings.Compare(a.CategoryName, b.CategoryName); c != 0 {
			return c
		}

		return strings.Compare(a.CategoryID.String(), b.CategoryID.String())
	})

	return spending, total
}

// Percentage returns part as percentage of total with one decimal place.
// It is "0.0" if total is zero.
func Percentage(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.0"
	}

	return part.Mul(hundred).Div(total).StringFixed(1)
}

// PercentChange returns the change from previous to current in percent,
// rounded to one decimal place. Without previous spending, the change is 0.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}

	return current.Sub(previous).Mul(hundred).Div(previous).Round(1)
}

// Average returns sum divided by count rounded to two decimal places, 0 if
// count is 0.
func Average(sum decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}

	return sum.Div(decimal.NewFromInt(count)).Round(2)
}
