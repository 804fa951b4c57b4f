package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/settings"
	"github.com/gin-gonic/gin"
)

// RegisterSettingsRoutes registers the routes for the budget settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup, store settings.Store) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings(store))
	r.PUT("", UpdateSettings(store))

	r.OPTIONS("/reset", OptionsSettingsReset)
	r.POST("/reset", ResetSettings(store))
}

type SettingsResponse struct {
	Data  *settings.Budget `json:"data"`  // The budget settings
	Error *string          `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings/reset [options]
func OptionsSettingsReset(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get settings
// @Description	Returns the budget settings. Settings that were never saved have their default values.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	httpError
// @Router			/v1/settings [get]
func GetSettings(store settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := store.Get(c.Request.Context())
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		c.JSON(http.StatusOK, SettingsResponse{Data: &b})
	}
}

// @Summary		Update settings
// @Description	Replaces the budget settings
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			settings	body		settings.Budget	true	"Settings"
// @Router			/v1/settings [put]
func UpdateSettings(store settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var b settings.Budget
		err := bindValid(c, &b)
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		err = store.Put(c.Request.Context(), b)
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		c.JSON(http.StatusOK, SettingsResponse{Data: &b})
	}
}

// @Summary		Reset settings
// @Description	Restores the default budget settings
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	httpError
// @Router			/v1/settings/reset [post]
func ResetSettings(store settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := store.Reset(c.Request.Context())
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		c.JSON(http.StatusOK, SettingsResponse{Data: &b})
	}
}
