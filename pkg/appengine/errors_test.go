package appengine_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &appengine.APIError{Code: 404, Message: "App does not exist.", Status: appengine.StatusNotFound}
	assert.Equal(t, "NOT_FOUND: App does not exist. (code: 404)", err.Error())

	err = &appengine.APIError{Code: 500, Message: "boom"}
	assert.Equal(t, "boom (code: 500)", err.Error())
}

func TestResponseError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *appengine.ResponseError
		expected string
	}{
		{
			name: "with envelope",
			err: &appengine.ResponseError{
				StatusCode: 403,
				Err:        &appengine.APIError{Code: 403, Message: "denied", Status: appengine.StatusPermissionDenied},
			},
			expected: "PERMISSION_DENIED: denied (code: 403)",
		},
		{
			name:     "raw body",
			err:      &appengine.ResponseError{StatusCode: 502, Body: []byte("bad gateway")},
			expected: "HTTP 502: bad gateway",
		},
		{
			name:     "empty body",
			err:      &appengine.ResponseError{StatusCode: 503},
			expected: "HTTP 503: Service Unavailable",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.err.Error())
		})
	}
}

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error":{"code":404,"message":"Version not found.","status":"NOT_FOUND"}}`)

	errResp := appengine.ParseResponseError(http.StatusNotFound, body)
	require.NotNil(t, errResp.Err)
	assert.Equal(t, 404, errResp.Err.Code)
	assert.Equal(t, "Version not found.", errResp.Err.Message)
	assert.Equal(t, body, errResp.Body)

	apiErr := &appengine.APIError{}
	require.ErrorAs(t, errResp, &apiErr)
	assert.Equal(t, appengine.StatusNotFound, apiErr.Status)

	errResp = appengine.ParseResponseError(http.StatusInternalServerError, []byte("<html>oops</html>"))
	assert.Nil(t, errResp.Err)
	assert.Equal(t, http.StatusInternalServerError, errResp.StatusCode)
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	notFound := appengine.ParseResponseError(http.StatusNotFound, nil)
	unauthenticated := appengine.ParseResponseError(http.StatusUnauthorized,
		[]byte(`{"error":{"code":401,"message":"no creds","status":"UNAUTHENTICATED"}}`))
	forbidden := &appengine.APIError{Code: 403, Status: appengine.StatusPermissionDenied}

	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
		forbidden    bool
	}{
		{name: "not found", err: notFound, notFound: true},
		{name: "wrapped not found", err: fmt.Errorf("getting version: %w", notFound), notFound: true},
		{name: "unauthenticated", err: unauthenticated, unauthorized: true},
		{name: "forbidden", err: forbidden, forbidden: true},
		{name: "plain error", err: errors.New("other")},
		{name: "nil", err: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.notFound, appengine.IsNotFound(testCase.err))
			assert.Equal(t, testCase.unauthorized, appengine.IsUnauthorized(testCase.err))
			assert.Equal(t, testCase.forbidden, appengine.IsForbidden(testCase.err))
		})
	}
}

func TestOperationError(t *testing.T) {
	t.Parallel()

	err := &appengine.OperationError{Operation: &appengine.Operation{
		Name:  "apps/myapp/operations/op-1",
		Done:  true,
		Error: &appengine.Status{Code: 9, Message: "version is serving"},
	}}

	assert.Equal(t, "operation apps/myapp/operations/op-1 failed: version is serving (code: 9)", err.Error())
	assert.Equal(t, "operation failed", (&appengine.OperationError{}).Error())
}
