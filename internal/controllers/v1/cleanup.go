package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// @Summary		Delete everything
// @Description	Permanently deletes all expenses, categories and settings. The user profile is reset to its defaults.
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(store settings.Store, defaults models.UserDefaults) gin.HandlerFunc {
	return func(c *gin.Context) {
		cleanup(c, store, defaults)
	}
}

func cleanup(c *gin.Context, store settings.Store, defaults models.UserDefaults) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.ShouldBindQuery(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, newHTTPError(errCleanupConfirmation))
		return
	}

	// Expenses reference categories, so they are deleted first
	resources := []any{
		&models.Expense{},
		&models.Category{},
		&models.Setting{},
		&models.User{},
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// The delete guard of categories is not needed, all expenses are gone at that point
		tx = tx.Session(&gorm.Session{SkipHooks: true})

		for _, model := range resources {
			err := tx.Where("1 = 1").Delete(model).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("cleanup failed")
		c.JSON(http.StatusInternalServerError, newHTTPError(models.ErrGeneral))
		return
	}

	// Settings may live outside of the database
	_, err = store.Reset(c.Request.Context())
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	// The profile is a singleton that always exists
	_, err = models.EnsureUser(models.DB, defaults)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
