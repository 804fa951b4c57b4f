package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/analytics"
	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyticsSpendingFoodLunch creates a single expense and verifies
// the breakdown for its month.
func (suite *TestSuiteStandard) TestAnalyticsSpendingFoodLunch() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Icon: "🍔", Color: "#FF6B6B"})
	createTestExpense(suite.T(), v1.ExpenseEditable{
		Title:      "Lunch",
		Amount:     decimal.RequireFromString("12.50"),
		Date:       types.NewDate(2024, 3, 15),
		CategoryID: ez_uuid.UUID{UUID: food.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/spending?startDate=2024-03-01&endDate=2024-03-31", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SpendingResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data.SpendingData, 1)

	s := response.Data.SpendingData[0]
	suite.Assert().Equal(food.Data.ID, s.CategoryID)
	suite.Assert().Equal("Food", s.CategoryName)
	suite.Assert().Equal("🍔", s.CategoryIcon)
	suite.Assert().Equal("#FF6B6B", s.CategoryColor)
	suite.Assert().Equal("12.5", s.TotalAmount.String())
	suite.Assert().Equal(int64(1), s.TransactionCount)
	suite.Assert().Equal("100.0", s.Percentage)

	suite.Assert().Equal("12.5", response.Data.TotalSpending.String())
	suite.Assert().Equal(analytics.SpendingTotals{TotalCategories: 1, TotalTransactions: 1}, response.Data.Summary)
	suite.Assert().Equal(types.NewDate(2024, 3, 1), response.Data.DateRange.StartDate)
	suite.Assert().Equal(types.NewDate(2024, 3, 31), response.Data.DateRange.EndDate)

	// The raw JSON keeps the decimal representation exact
	suite.Assert().Contains(r.Body.String(), `"totalAmount":"12.5"`)
}

func (suite *TestSuiteStandard) TestAnalyticsSpendingDefaultRange() {
	today := types.DateOf(time.Now())
	month := types.MonthOf(time.Now())
	createTestExpense(suite.T(), v1.ExpenseEditable{Date: today, Amount: decimal.NewFromInt(10)})
	createTestExpense(suite.T(), v1.ExpenseEditable{Date: month.FirstDay().AddDays(-1), Amount: decimal.NewFromInt(99)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/spending", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SpendingResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(month.FirstDay(), response.Data.DateRange.StartDate)
	suite.Assert().Equal(month.LastDay(), response.Data.DateRange.EndDate)
	suite.Assert().True(decimal.NewFromInt(10).Equal(response.Data.TotalSpending))
}

func (suite *TestSuiteStandard) TestAnalyticsSpendingEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/spending?startDate=2024-03-01&endDate=2024-03-31", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SpendingResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data.SpendingData)
	suite.Assert().True(response.Data.TotalSpending.IsZero())
	suite.Assert().Contains(r.Body.String(), `"spendingData":[]`)
}

func (suite *TestSuiteStandard) TestAnalyticsSpendingInvalid() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"Start after end", "startDate=2024-03-31&endDate=2024-03-01", analytics.ErrInvalidRange.Error()},
		{"Start after default end", "startDate=2999-01-01", analytics.ErrInvalidRange.Error()},
		{"Invalid date", "endDate=31.03.2024", types.ErrInvalidDate.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/analytics/spending?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response errorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, response.Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAnalyticsSummary() {
	now := time.Now()
	previous := types.MonthOf(now).AddDate(0, -1)
	category := ez_uuid.UUID{UUID: createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"}).Data.ID}

	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: category, Date: types.DateOf(now), Amount: decimal.NewFromInt(20)})
	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: category, Date: types.DateOf(now), Amount: decimal.RequireFromString("10.01")})
	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: category, Date: previous.FirstDay(), Amount: decimal.NewFromInt(20)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	data := response.Data
	suite.Assert().Equal("30.01", data.CurrentMonth.Sum.String())
	suite.Assert().Equal(int64(2), data.CurrentMonth.Count)
	suite.Assert().Equal("20", data.PreviousMonth.Sum.String())
	suite.Assert().Equal("50.1", data.SpendingChange.String())
	suite.Assert().Equal("15.01", data.AverageTransaction.String())

	require.Len(suite.T(), data.RecentExpenses, 3)
	suite.Assert().Equal(previous.FirstDay(), data.RecentExpenses[2].Date)
	require.NotNil(suite.T(), data.RecentExpenses[0].Category)
	suite.Assert().Equal("Food", data.RecentExpenses[0].Category.Name)
}

func (suite *TestSuiteStandard) TestAnalyticsSummaryNoPreviousSpending() {
	createTestExpense(suite.T(), v1.ExpenseEditable{Amount: decimal.NewFromInt(20)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/analytics/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.SpendingChange.IsZero())
}

func (suite *TestSuiteStandard) TestAnalyticsDBClosed() {
	suite.CloseDB()

	for _, path := range []string{"spending", "summary"} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/analytics/"+path, "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)

			var response errorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, models.ErrGeneral.Error(), response.Error)
		})
	}
}
