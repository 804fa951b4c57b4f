package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

// provisionUser creates the profile the way the server does on startup.
func (suite *TestSuiteStandard) provisionUser() models.User {
	user, err := models.EnsureUser(models.DB, test.UserDefaults)
	require.NoError(suite.T(), err)
	return user
}

func (suite *TestSuiteStandard) TestUserNotProvisioned() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUserGet() {
	user := suite.provisionUser()

	var first, second v1.UserResponse
	for _, target := range []*v1.UserResponse{&first, &second} {
		r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
		test.DecodeResponse(suite.T(), &r, target)
	}

	suite.Assert().Equal(user.ID, first.Data.ID)
	suite.Assert().Equal(first.Data.ID, second.Data.ID)
	suite.Assert().Equal(test.UserDefaults.Name, first.Data.Name)
	require.NotNil(suite.T(), first.Data.Email)
	suite.Assert().Equal(test.UserDefaults.Email, *first.Data.Email)
	suite.Assert().Nil(first.Data.Avatar)
}

func (suite *TestSuiteStandard) TestUserDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestUserUpdate() {
	user := suite.provisionUser()

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/users", v1.UserEditable{
		Name:   "  Jane Doe ",
		Email:  stringPtr(" "),
		Avatar: stringPtr("https://example.com/avatars/jane.png"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal(user.ID, updated.Data.ID)
	suite.Assert().Equal("Jane Doe", updated.Data.Name)
	suite.Assert().Nil(updated.Data.Email, "Blank email addresses must be stored as null")
	require.NotNil(suite.T(), updated.Data.Avatar)
	suite.Assert().Equal("https://example.com/avatars/jane.png", *updated.Data.Avatar)

	// The update is persisted
	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var stored v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	suite.Assert().Equal("Jane Doe", stored.Data.Name)
	suite.Assert().Contains(r.Body.String(), `"email":null`)
}

func (suite *TestSuiteStandard) TestUserUpdateCreatesProfile() {
	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/users", v1.UserEditable{Name: "Alex"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	user, err := models.CurrentUser(models.DB)
	require.NoError(suite.T(), err)
	suite.Assert().Equal("Alex", user.Name)
}

func (suite *TestSuiteStandard) TestUserUpdateInvalid() {
	suite.provisionUser()

	tests := []struct {
		name   string
		body   any
		fields []string
	}{
		{"Blank name", v1.UserEditable{Name: " \t"}, []string{"name"}},
		{"Invalid email", v1.UserEditable{Name: "Alex", Email: stringPtr("not-an-email")}, []string{"email"}},
		{"Invalid avatar", v1.UserEditable{Name: "Alex", Avatar: stringPtr("avatar.png")}, []string{"avatar"}},
		{"Everything broken", map[string]any{"email": "@", "avatar": "::"}, []string{"name", "email", "avatar"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPut, "http://example.com/v1/users", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response errorResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, "validation failed", response.Error)

			fields := make([]string, 0, len(response.Errors))
			for _, e := range response.Errors {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}

	// The profile is unchanged
	user, err := models.CurrentUser(models.DB)
	require.NoError(suite.T(), err)
	suite.Assert().Equal(test.UserDefaults.Name, user.Name)
}

func (suite *TestSuiteStandard) TestUserReset() {
	user := suite.provisionUser()

	r := test.Request(suite.T(), http.MethodPut, "http://example.com/v1/users", v1.UserEditable{
		Name:   "Jane Doe",
		Email:  stringPtr("jane@example.com"),
		Avatar: stringPtr("https://example.com/avatars/jane.png"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users/reset", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reset v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &reset)
	suite.Assert().Equal(user.ID, reset.Data.ID)
	suite.Assert().Equal(test.UserDefaults.Name, reset.Data.Name)
	require.NotNil(suite.T(), reset.Data.Email)
	suite.Assert().Equal(test.UserDefaults.Email, *reset.Data.Email)
	suite.Assert().Nil(reset.Data.Avatar)
}

func (suite *TestSuiteStandard) TestUserResetWithoutProfile() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users/reset", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reset v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &reset)
	suite.Assert().Equal(test.UserDefaults.Name, reset.Data.Name)
}

func (suite *TestSuiteStandard) TestUserUpdateBlankOptionals() {
	suite.provisionUser()

	tests := []struct {
		name string
		body string
	}{
		{"Empty strings", `{"name": "Alex", "email": "", "avatar": ""}`},
		{"Whitespace", `{"name": "Alex", "email": "  ", "avatar": "\t"}`},
		{"Null", `{"name": "Alex", "email": null, "avatar": null}`},
		{"Missing", `{"name": "Alex"}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPut, "http://example.com/v1/users", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserResponse
			test.DecodeResponse(t, &r, &response)
			assert.Nil(t, response.Data.Email)
			assert.Nil(t, response.Data.Avatar)

			user, err := models.CurrentUser(models.DB)
			require.NoError(t, err)
			assert.Nil(t, user.Email)
			assert.Nil(t, user.Avatar)
		})
	}
}
