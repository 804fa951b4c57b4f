package v1

import (
	"errors"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.Category | models.Expense](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), newHTTPError(httputil.ErrInvalidUUID))
		return
	}

	err = models.DB.First(&resource, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// bindValid binds the request body to data, applies normalize and validates
// the result. Values that could not be decoded are reported together with
// the rule violations of all other fields.
func bindValid[T any](c *gin.Context, data *T, normalize ...func(T) T) error {
	var decodeErr *validation.Error

	err := httputil.BindData(c, data)
	if err != nil && !errors.As(err, &decodeErr) {
		return err
	}

	for _, n := range normalize {
		*data = n(*data)
	}

	var undecoded []validation.FieldError
	if decodeErr != nil {
		undecoded = decodeErr.Fields
	}

	return validation.Check(*data).Merge(undecoded).Err()
}
