package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for the user profile with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup, defaults models.UserDefaults) {
	r.OPTIONS("", OptionsUser)
	r.GET("", GetUser)
	r.PUT("", UpdateUser)

	r.OPTIONS("/reset", OptionsUserReset)
	r.POST("/reset", ResetUser(defaults))
}

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name   string  `json:"name" example:"Jane Doe" validate:"notblank,max=255"`                            // Name of the user
	Email  *string `json:"email" example:"jane@example.com" validate:"omitempty,email,max=255"`            // Email address of the user
	Avatar *string `json:"avatar" example:"https://example.com/avatars/jane.png" validate:"omitempty,url"` // URL of the avatar image
}

// trimmed returns the editable with surrounding whitespace removed.
// Blank optional values are nil so that they pass validation and are
// stored as null.
func (editable UserEditable) trimmed() UserEditable {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		if t == "" {
			return nil
		}
		return &t
	}

	return UserEditable{
		Name:   strings.TrimSpace(editable.Name),
		Email:  trim(editable.Email),
		Avatar: trim(editable.Avatar),
	}
}

type User struct {
	models.DefaultModel
	UserEditable
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:   model.Name,
			Email:  model.Email,
			Avatar: model.Avatar,
		},
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`  // Data for the user
	Error *string `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUser(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/reset [options]
func OptionsUserReset(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get user
// @Description	Returns the user profile
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/users [get]
func GetUser(c *gin.Context) {
	user, err := models.CurrentUser(models.DB)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Replaces the user profile. The profile is created if it does not exist.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users [put]
func UpdateUser(c *gin.Context) {
	var editable UserEditable
	err := bindValid(c, &editable, UserEditable.trimmed)
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	user, err := currentOrNewUser()
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	user.Name = editable.Name
	user.Email = editable.Email
	user.Avatar = editable.Avatar

	err = models.DB.Save(&user).Error
	if err != nil {
		c.JSON(status(err), newHTTPError(err))
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Reset user
// @Description	Restores the default name and email and removes the avatar
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		500	{object}	httpError
// @Router			/v1/users/reset [post]
func ResetUser(defaults models.UserDefaults) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentOrNewUser()
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		user.Reset(defaults)
		err = models.DB.Save(&user).Error
		if err != nil {
			c.JSON(status(err), newHTTPError(err))
			return
		}

		data := newUser(user)
		c.JSON(http.StatusOK, UserResponse{Data: &data})
	}
}

// currentOrNewUser returns the stored profile or an empty one that
// is created on save.
func currentOrNewUser() (models.User, error) {
	user, err := models.CurrentUser(models.DB)
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.User{}, nil
	}

	return user, err
}
