package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/analytics"
	"github.com/expense-tracker/backend/internal/budget"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/settings"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterDashboardRoutes registers the dashboard route with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup, store settings.Store) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard(store))
}

type DashboardQuery struct {
	Hour int `form:"hour" example:"14"` // Hour of the day used for the greeting
}

type Dashboard struct {
	Greeting budget.Greeting      `json:"greeting"` // Greeting for the time of day
	Month    analytics.MonthTotal `json:"month"`    // Spending in the current month
	Settings settings.Budget      `json:"settings"` // The budget settings
	Budget   budget.Metrics       `json:"budget"`   // Budget metrics of the current month
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`  // The dashboard
	Error *string    `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the greeting for the user, the spending of the current month and the budget metrics
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			hour	query		int	false	"Hour of the day (0-23) for the greeting. Defaults to the local hour of the server."
// @Router			/v1/dashboard [get]
func GetDashboard(store settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		var query DashboardQuery
		err := c.ShouldBindQuery(&query)
		if err != nil {
			c.JSON(http.StatusBadRequest, newHTTPError(errHourInvalid))
			return
		}

		_, setFields := httputil.GetURLFields(c.Request.URL, query)
		if slices.Contains(setFields, "Hour") {
			if query.Hour < 0 || query.Hour > 23 {
				c.JSON(http.StatusBadRequest, newHTTPError(errHourInvalid))
				return
			}
			now = time.Date(now.Year(), now.Month(), now.Day(), query.Hour, 0, 0, 0, now.Location())
		}

		// Without a profile, the greeting has no name
		user, err := models.CurrentUser(models.DB)
		if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		month, err := analytics.MonthSpending(c.Request.Context(), models.DB, types.MonthOf(now))
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		b, err := store.Get(c.Request.Context())
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		c.JSON(http.StatusOK, DashboardResponse{Data: &Dashboard{
			Greeting: budget.Greet(user.Name, now),
			Month:    month,
			Settings: b,
			Budget:   budget.Calculate(month.Sum, b.MonthlyIncome, b.SpendingLimit),
		}})
	}
}
