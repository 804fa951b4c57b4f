package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PUT("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Expense{})
}

// @Summary		Create expense
// @Description	Creates a new expense
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	err := bindValid(c, &editable)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	expense := editable.model()
	err = expense.Store(models.DB)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	respondExpense(c, http.StatusCreated, expense)
}

// @Summary		Get expenses
// @Description	Returns a page of expenses, newest first
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Router			/v1/expenses [get]
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			startDate	query	string	false	"First date to include, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Last date to include, YYYY-MM-DD"
// @Param			page		query	int		false	"The page to return, starting at 1. Defaults to 1."
// @Param			limit		query	int		false	"Maximum number of expenses per page, at most 1000. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, newHTTPError(err))
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	page, limit, err := filter.pagination(setFields)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	var total int64
	err = filter.model().Apply(models.DB.Model(&models.Expense{})).Count(&total).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	var expenses []models.Expense
	err = filter.model().Apply(models.DB).
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	pagination := newPagination(page, limit, total)
	c.JSON(http.StatusOK, ExpenseListResponse{
		Data:       data,
		Pagination: &pagination,
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense with its category
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Update expense
// @Description	Replaces an existing expense. All editable fields must be specified.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [put]
func UpdateExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	var editable ExpenseEditable
	err := bindValid(c, &editable)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	update := editable.model()
	update.DefaultModel = expense.DefaultModel

	err = update.Store(models.DB)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	respondExpense(c, http.StatusOK, update)
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, ok := getExpense(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getExpense loads the expense with the ID from the URL and its category.
// If it cannot be loaded, the error response is written and ok is false.
func getExpense(c *gin.Context) (expense models.Expense, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), newHTTPError(httputil.ErrInvalidUUID))
		return models.Expense{}, false
	}

	err = models.DB.Preload("Category").First(&expense, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return models.Expense{}, false
	}

	return expense, true
}

// respondExpense reloads the stored expense with its category and writes it
// with the given status.
func respondExpense(c *gin.Context, code int, expense models.Expense) {
	err := models.DB.Preload("Category").First(&expense, expense.ID).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := newExpense(c, expense)
	c.JSON(code, ExpenseResponse{Data: &data})
}
