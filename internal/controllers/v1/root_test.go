package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(v1.Links{
		Analytics:  "http://example.com/v1/analytics",
		Categories: "http://example.com/v1/categories",
		Dashboard:  "http://example.com/v1/dashboard",
		Expenses:   "http://example.com/v1/expenses",
		Settings:   "http://example.com/v1/settings",
		Users:      "http://example.com/v1/users",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "OPTIONS, GET, DELETE"},
		{"/v1/categories", "OPTIONS, GET, POST"},
		{"/v1/expenses", "OPTIONS, GET, POST"},
		{"/v1/analytics/spending", "OPTIONS, GET"},
		{"/v1/analytics/summary", "OPTIONS, GET"},
		{"/v1/users", "OPTIONS, GET, PUT"},
		{"/v1/users/reset", "OPTIONS, POST"},
		{"/v1/settings", "OPTIONS, GET, PUT"},
		{"/v1/settings/reset", "OPTIONS, POST"},
		{"/v1/dashboard", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestMethodNotAllowedV1() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1"},
		{http.MethodDelete, "/v1/users"},
		{http.MethodPut, "/v1/analytics/summary"},
		{http.MethodGet, "/v1/settings/reset"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := test.Request(t, tt.method, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusMethodNotAllowed)
		})
	}
}
