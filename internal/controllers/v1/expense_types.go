package v1

import (
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	Title      string          `json:"title" example:"Lunch" validate:"notblank,max=255"`                                                  // Title of the expense
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50" validate:"positive"`                                    // Amount of the expense, must be larger than zero
	Date       types.Date      `json:"date" swaggertype:"string" example:"2024-03-15" validate:"required"`                                 // Date of the expense in YYYY-MM-DD format
	CategoryID ez_uuid.UUID    `json:"categoryId" swaggertype:"string" example:"3b1ea324-d438-4419-882a-2fc91d71772f" validate:"required"` // ID of the category of the expense
	Notes      *string         `json:"notes" example:"With the team"`                                                                      // Notes about the expense
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		Title:      editable.Title,
		Amount:     editable.Amount,
		Date:       editable.Date,
		CategoryID: editable.CategoryID.UUID,
		Notes:      editable.Notes,
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/e3f9b8d2-3a63-4b89-8b7b-63d9b2a60f2c"`       // The expense itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category of the expense
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links    ExpenseLinks `json:"links"`
	Category *Category    `json:"category,omitempty"` // The category of the expense. Not set when listed for a category
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	expense := Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			Title:      model.Title,
			Amount:     model.Amount,
			Date:       model.Date,
			CategoryID: ez_uuid.UUID{UUID: model.CategoryID},
			Notes:      model.Notes,
		},
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}

	if model.Category != nil {
		category := newCategory(c, *model.Category)
		expense.Category = &category
	}

	return expense
}

// ExpenseQueryFilter contains the query parameters for expense lists.
type ExpenseQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"categoryId"` // ID of the category
	StartDate  types.Date   `form:"startDate"`  // First date to include
	EndDate    types.Date   `form:"endDate"`    // Last date to include
	Page       int          `form:"page"`       // Page to return, starting at 1
	Limit      int          `form:"limit"`      // Number of expenses per page
}

// pagination returns the page and limit. Parameters that are not set use
// the defaults.
func (f ExpenseQueryFilter) pagination(setFields []string) (page, limit int, err error) {
	page, limit = 1, defaultLimit

	if slices.Contains(setFields, "Page") {
		if f.Page < 1 {
			return 0, 0, errPageInvalid
		}
		page = f.Page
	}

	if slices.Contains(setFields, "Limit") {
		if f.Limit < 1 || f.Limit > maxLimit {
			return 0, 0, errLimitInvalid
		}
		limit = f.Limit
	}

	return page, limit, nil
}

func (f ExpenseQueryFilter) model() models.ExpenseFilter {
	return models.ExpenseFilter{
		CategoryID: f.CategoryID.UUID,
		From:       f.StartDate,
		Until:      f.EndDate,
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`       // List of Expenses
	Error      *string     `json:"error"`      // The error, if any occurred
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`  // Data for the Expense
	Error *string  `json:"error"` // The error, if any occurred
}
