package v1

import (
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Number of expenses shown on a single category
const categoryRecentExpenses = 10

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string `json:"name" example:"Groceries" validate:"notblank,max=255"` // Name of the category, unique ignoring case
	Icon  string `json:"icon" example:"🛒" validate:"notblank,max=64"`          // Icon of the category, usually an emoji
	Color string `json:"color" example:"#4CAF50" validate:"rgbcolor"`          // Color of the category as #RGB or #RRGGBB
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Icon:  editable.Icon,
		Color: editable.Color,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The category itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?categoryId=3b1ea324-d438-4419-882a-2fc91d71772f"` // Expenses for this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`

	// These fields are computed
	ExpenseCount   *int64    `json:"expenseCount,omitempty" example:"12"` // Number of expenses in the category. Only set on lists
	RecentExpenses []Expense `json:"recentExpenses,omitempty"`            // The most recent expenses of the category. Only set for single categories
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Icon:  model.Icon,
			Color: model.Color,
		},
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?categoryId=%s", url, model.ID),
		},
	}
}

// newCategoryDetail returns the category with its most recent expenses.
func newCategoryDetail(c *gin.Context, db *gorm.DB, model models.Category) (Category, error) {
	category := newCategory(c, model)

	expenses, err := model.RecentExpenses(db, categoryRecentExpenses)
	if err != nil {
		return Category{}, err
	}

	category.RecentExpenses = make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		category.RecentExpenses = append(category.RecentExpenses, newExpense(c, expense))
	}

	return category, nil
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`  // List of Categories
	Error *string    `json:"error"` // The error, if any occurred
}

type CategoryResponse struct {
	Data  *Category `json:"data"`  // Data for the Category
	Error *string   `json:"error"` // The error, if any occurred
}
