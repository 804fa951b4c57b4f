package v1

import (
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/analytics"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/spending", OptionsAnalytics)
	r.GET("/spending", GetSpending)

	r.OPTIONS("/summary", OptionsAnalytics)
	r.GET("/summary", GetSummary)
}

type SpendingQuery struct {
	StartDate types.Date `form:"startDate"` // First day of the range
	EndDate   types.Date `form:"endDate"`   // Last day of the range
}

type SpendingResponse struct {
	Data  *analytics.SpendingReport `json:"data"`  // The spending breakdown
	Error *string                   `json:"error"` // The error, if any occurred
}

type MonthSpending struct {
	Sum   decimal.Decimal `json:"sum" swaggertype:"string" example:"1200.5"` // Sum of all expenses in the month
	Count int64           `json:"count" example:"14"`                        // Number of expenses in the month
}

type Summary struct {
	CurrentMonth       MonthSpending   `json:"currentMonth"`                                            // Spending in the current month
	PreviousMonth      MonthSpending   `json:"previousMonth"`                                           // Spending in the previous month
	SpendingChange     decimal.Decimal `json:"spendingChange" swaggertype:"string" example:"12.5"`      // Change to the previous month in percent
	AverageTransaction decimal.Decimal `json:"averageTransaction" swaggertype:"string" example:"85.75"` // Average expense amount of the current month
	RecentExpenses     []Expense       `json:"recentExpenses"`                                          // The most recent expenses
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`  // The dashboard summary
	Error *string  `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Router			/v1/analytics/spending [options]
// @Router			/v1/analytics/summary [options]
func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Spending by category
// @Description	Returns the spending per category for a date range. Missing bounds default to the current month.
// @Tags			Analytics
// @Produce		json
// @Success		200			{object}	SpendingResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			startDate	query		string	false	"First date to include, YYYY-MM-DD"
// @Param			endDate		query		string	false	"Last date to include, YYYY-MM-DD"
// @Router			/v1/analytics/spending [get]
func GetSpending(c *gin.Context) {
	var query SpendingQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	r, err := analytics.ResolveRange(types.DateOf(time.Now()), query.StartDate, query.EndDate)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	report, err := analytics.Spending(c.Request.Context(), models.DB, r)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusOK, SpendingResponse{Data: &report})
}

// @Summary		Dashboard summary
// @Description	Compares the spending of the current month to the previous month and returns the most recent expenses
// @Tags			Analytics
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		500	{object}	httpError
// @Router			/v1/analytics/summary [get]
func GetSummary(c *gin.Context) {
	summary, err := analytics.Summary(c.Request.Context(), models.DB, time.Now())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := Summary{
		CurrentMonth: MonthSpending{
			Sum:   summary.CurrentMonth.Sum,
			Count: summary.CurrentMonth.Count,
		},
		PreviousMonth: MonthSpending{
			Sum:   summary.PreviousMonth.Sum,
			Count: summary.PreviousMonth.Count,
		},
		SpendingChange:     summary.SpendingChange,
		AverageTransaction: summary.AverageTransaction,
		RecentExpenses:     make([]Expense, 0, len(summary.Recent)),
	}

	for _, expense := range summary.Recent {
		data.RecentExpenses = append(data.RecentExpenses, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}
