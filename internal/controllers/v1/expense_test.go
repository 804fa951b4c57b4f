package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpensesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestExpense(t, v1.ExpenseEditable{CategoryID: ez_uuid.UUID{UUID: category.Data.ID}}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/expenses", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response errorResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Equal(t, models.ErrGeneral.Error(), response.Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestExpensesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestExpensesOptions() {
	tests := []struct {
		name   string
		id     string // path at the Expenses endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", createTestExpense(suite.T(), v1.ExpenseEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/expenses", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PUT, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
	notes := "   "

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", map[string]any{
		"title":      " Lunch ",
		"amount":     "12.50",
		"date":       "2024-03-15",
		"categoryId": category.Data.ID.String(),
		"notes":      notes,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var expense v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &expense)

	suite.Assert().NotEqual(uuid.Nil, expense.Data.ID)
	suite.Assert().Equal("Lunch", expense.Data.Title)
	suite.Assert().True(decimal.NewFromFloat(12.5).Equal(expense.Data.Amount), expense.Data.Amount.String())
	suite.Assert().Equal(types.NewDate(2024, 3, 15), expense.Data.Date)
	suite.Assert().Equal(category.Data.ID, expense.Data.CategoryID.UUID)
	suite.Assert().Nil(expense.Data.Notes)
	require.NotNil(suite.T(), expense.Data.Category)
	suite.Assert().Equal("Food", expense.Data.Category.Name)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), expense.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestExpensesCreateTimestampDate() {
	e := createTestExpense(suite.T(), v1.ExpenseEditable{})

	r := test.Request(suite.T(), http.MethodPut, e.Data.Links.Self, map[string]any{
		"title":      "Dinner",
		"amount":     42,
		"date":       "2024-03-15T21:30:00+01:00",
		"categoryId": e.Data.CategoryID.String(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var expense v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &expense)
	suite.Assert().Equal(types.NewDate(2024, 3, 15), expense.Data.Date)
	suite.Assert().True(decimal.NewFromInt(42).Equal(expense.Data.Amount))
}

func (suite *TestSuiteStandard) TestExpensesCreateInvalid() {
	tests := []struct {
		name   string
		body   any
		err    string
		fields []string
	}{
		{"Empty object", "{}", validation.ErrValidation.Error(), []string{"title", "amount", "date", "categoryId"}},
		{"Negative amount", `{ "title": "Lunch", "amount": "-5", "date": "2024-03-15", "categoryId": "` + uuid.NewString() + `" }`, validation.ErrValidation.Error(), []string{"amount"}},
		{"Invalid date", `{ "title": "Lunch", "amount": "5", "date": "2024-02-30" }`, validation.ErrValidation.Error(), []string{"date", "categoryId"}},
		{"Invalid category ID", `{ "title": "Lunch", "amount": "5", "date": "2024-02-03", "categoryId": "not-a-uuid" }`, validation.ErrValidation.Error(), []string{"categoryId"}},
		{"Undecodable values and blank title", `{ "title": "", "amount": "abc", "date": "2024-13-45", "categoryId": "x" }`, validation.ErrValidation.Error(), []string{"amount", "date", "categoryId", "title"}},
		{"Broken JSON", `{ "title": "Lunch"`, httputil.ErrInvalidBody.Error(), nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/expenses", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response errorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, response.Error, tt.err)

			var fields []string
			for _, f := range response.Errors {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

// TestExpensesCreateInvalidMessages verifies that values which cannot be
// decoded are reported per field along with the other failed rules.
func (suite *TestSuiteStandard) TestExpensesCreateInvalidMessages() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", `{"title": "", "amount": "abc", "date": "2024-13-45", "categoryId": "x"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response errorResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(validation.ErrValidation.Error(), response.Error)
	suite.Assert().Equal([]validation.FieldError{
		{Field: "amount", Message: "amount must be a valid decimal number"},
		{Field: "date", Message: "date must be a valid date in the YYYY-MM-DD format"},
		{Field: "categoryId", Message: "categoryId must be a valid UUID"},
		{Field: "title", Message: "title is required"},
	}, response.Errors)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

// TestExpensesNonexistentCategory verifies that an expense referencing a
// category that does not exist is rejected and not stored.
func (suite *TestSuiteStandard) TestExpensesNonexistentCategory() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", v1.ExpenseEditable{
		Title:      "Lunch",
		Amount:     decimal.NewFromFloat(12.5),
		Date:       types.NewDate(2024, 3, 15),
		CategoryID: ez_uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response errorResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrExpenseCategoryNotFound.Error(), response.Error)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	var list v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Equal(int64(0), list.Pagination.Total)
	suite.Assert().Empty(list.Data)
}

func (suite *TestSuiteStandard) TestExpensesPagination() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	for day := 1; day <= 25; day++ {
		createTestExpense(suite.T(), v1.ExpenseEditable{
			CategoryID: ez_uuid.UUID{UUID: category.Data.ID},
			Title:      fmt.Sprintf("Day %d", day),
			Date:       types.NewDate(2024, 3, day),
		})
	}

	tests := []struct {
		query      string
		titles     []string // first and last title
		pagination v1.Pagination
	}{
		{"", []string{"Day 25", "Day 1"}, v1.Pagination{Page: 1, Limit: 50, Total: 25, Pages: 1}},
		{"page=2&limit=10", []string{"Day 15", "Day 6"}, v1.Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}},
		{"page=3&limit=10", []string{"Day 5", "Day 1"}, v1.Pagination{Page: 3, Limit: 10, Total: 25, Pages: 3}},
		{"page=4&limit=10", nil, v1.Pagination{Page: 4, Limit: 10, Total: 25, Pages: 3}},
		{"limit=1000", []string{"Day 25", "Day 1"}, v1.Pagination{Page: 1, Limit: 1000, Total: 25, Pages: 1}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/expenses?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Pagination)
			assert.Equal(t, tt.pagination, *response.Pagination)

			if tt.titles == nil {
				assert.Empty(t, response.Data)
				return
			}

			require.NotEmpty(t, response.Data)
			assert.Equal(t, tt.titles[0], response.Data[0].Title)
			assert.Equal(t, tt.titles[1], response.Data[len(response.Data)-1].Title)
			assert.NotNil(t, response.Data[0].Category)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesPaginationInvalid() {
	tests := []struct {
		query string
		err   string
	}{
		{"page=0", "page"},
		{"page=-1", "page"},
		{"limit=0", "limit"},
		{"limit=1001", "limit"},
		{"limit=ten", "invalid syntax"},
		{"startDate=yesterday", "is not a valid date"},
		{"categoryId=not-a-uuid", "invalid UUID"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/expenses?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response errorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, response.Error, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesFilter() {
	food := ez_uuid.UUID{UUID: createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"}).Data.ID}
	travel := ez_uuid.UUID{UUID: createTestCategory(suite.T(), v1.CategoryEditable{Name: "Travel"}).Data.ID}

	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: food, Date: types.NewDate(2024, 2, 29)})
	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: food, Date: types.NewDate(2024, 3, 1)})
	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: travel, Date: types.NewDate(2024, 3, 31)})
	createTestExpense(suite.T(), v1.ExpenseEditable{CategoryID: travel, Date: types.NewDate(2024, 4, 1)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 4},
		{"Category", fmt.Sprintf("categoryId=%s", food), 2},
		{"Start date", "startDate=2024-03-01", 3},
		{"End date", "endDate=2024-03-31", 3},
		{"Inclusive range", "startDate=2024-03-01&endDate=2024-03-31", 2},
		{"Range and category", fmt.Sprintf("startDate=2024-03-01&endDate=2024-03-31&categoryId=%s", travel), 1},
		{"Empty range", "startDate=2024-05-01&endDate=2024-05-31", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/expenses?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
			assert.Equal(t, int64(tt.len), response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesGetSingle() {
	e := createTestExpense(suite.T(), v1.ExpenseEditable{Title: "Coffee"})

	r := test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Coffee", response.Data.Title)
	require.NotNil(suite.T(), response.Data.Category)
	suite.Assert().Equal(e.Data.CategoryID.UUID, response.Data.Category.ID)

	// Repeated reads are identical
	again := test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	suite.Assert().Equal(r.Body.String(), again.Body.String())
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	e := createTestExpense(suite.T(), v1.ExpenseEditable{Title: "Coffee"})
	other := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Treats"})
	notes := "Oat milk"

	r := test.Request(suite.T(), http.MethodPut, e.Data.Links.Self, v1.ExpenseEditable{
		Title:      "Cappuccino",
		Amount:     decimal.NewFromFloat(4.2),
		Date:       types.NewDate(2024, 1, 2),
		CategoryID: ez_uuid.UUID{UUID: other.Data.ID},
		Notes:      &notes,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(e.Data.ID, response.Data.ID)
	suite.Assert().Equal("Cappuccino", response.Data.Title)
	suite.Assert().Equal("Treats", response.Data.Category.Name)
	require.NotNil(suite.T(), response.Data.Notes)
	suite.Assert().Equal("Oat milk", *response.Data.Notes)

	suite.T().Run("Nonexistent category", func(t *testing.T) {
		r := test.Request(t, http.MethodPut, e.Data.Links.Self, v1.ExpenseEditable{
			Title:      "Cappuccino",
			Amount:     decimal.NewFromFloat(4.2),
			Date:       types.NewDate(2024, 1, 2),
			CategoryID: ez_uuid.New(),
		})
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

		r = test.Request(t, http.MethodGet, e.Data.Links.Self, "")
		var response v1.ExpenseResponse
		test.DecodeResponse(t, &r, &response)
		assert.Equal(t, "Treats", response.Data.Category.Name)
	})
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	e := createTestExpense(suite.T(), v1.ExpenseEditable{})

	r := test.Request(suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, e.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
