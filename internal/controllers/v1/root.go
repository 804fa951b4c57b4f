package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/settings"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services shared by the v1 handlers.
type Dependencies struct {
	Settings     settings.Store
	UserDefaults models.UserDefaults
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup, deps Dependencies) {
	RegisterRootRoutes(r, deps)
	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterExpenseRoutes(r.Group("/expenses"))
	RegisterAnalyticsRoutes(r.Group("/analytics"))
	RegisterUserRoutes(r.Group("/users"), deps.UserDefaults)
	RegisterSettingsRoutes(r.Group("/settings"), deps.Settings)
	RegisterDashboardRoutes(r.Group("/dashboard"), deps.Settings)
}

func RegisterRootRoutes(r *gin.RouterGroup, deps Dependencies) {
	r.GET("", Get)
	r.DELETE("", Cleanup(deps.Settings, deps.UserDefaults))
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Analytics  string `json:"analytics" example:"https://example.com/api/v1/analytics"`   // URL of the analytics endpoints
	Categories string `json:"categories" example:"https://example.com/api/v1/categories"` // URL of Category collection endpoint
	Dashboard  string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`   // URL of the dashboard endpoint
	Expenses   string `json:"expenses" example:"https://example.com/api/v1/expenses"`     // URL of Expense collection endpoint
	Settings   string `json:"settings" example:"https://example.com/api/v1/settings"`     // URL of the budget settings
	Users      string `json:"users" example:"https://example.com/api/v1/users"`           // URL of the user profile
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Analytics:  url + "/v1/analytics",
			Categories: url + "/v1/categories",
			Dashboard:  url + "/v1/dashboard",
			Expenses:   url + "/v1/expenses",
			Settings:   url + "/v1/settings",
			Users:      url + "/v1/users",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
