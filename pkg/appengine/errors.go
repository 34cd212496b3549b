package appengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error payload returned by the Admin API.
type APIError struct {
	Code    int                      `json:"code"              yaml:"code"`
	Message string                   `json:"message"           yaml:"message"`
	Status  string                   `json:"status,omitempty"  yaml:"status,omitempty"`
	Details []map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
	}

	return fmt.Sprintf("%s: %s (code: %d)", e.Status, e.Message, e.Code)
}

// ResponseError represents a non-2xx response from the API.
type ResponseError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`
	// Err is the decoded "error" envelope, if the body carried one.
	Err *APIError `json:"error,omitempty"`
	// Body is the raw response body.
	Body []byte `json:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	if len(e.Body) > 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, string(e.Body))
	}

	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap exposes the API error to errors.As.
func (e *ResponseError) Unwrap() error {
	if e.Err == nil {
		return nil
	}

	return e.Err
}

// Canonical status names used by the API.
const (
	StatusNotFound           = "NOT_FOUND"
	StatusUnauthenticated    = "UNAUTHENTICATED"
	StatusPermissionDenied   = "PERMISSION_DENIED"
	StatusAlreadyExists      = "ALREADY_EXISTS"
	StatusFailedPrecondition = "FAILED_PRECONDITION"
	StatusResourceExhausted  = "RESOURCE_EXHAUSTED"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIEndpointRequired   = errors.New("API endpoint is required")
	ErrInvalidConfig         = errors.New("invalid config")
	ErrOperationNameRequired = errors.New("operation name is required")
	ErrUnsupportedOperation  = errors.New("unsupported batch operation")
)

// OperationError is returned when a long-running operation finished with an error status.
type OperationError struct {
	Operation *Operation
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Operation == nil || e.Operation.Error == nil {
		return "operation failed"
	}

	return fmt.Sprintf("operation %s failed: %s (code: %d)", e.Operation.Name, e.Operation.Error.Message, e.Operation.Error.Code)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound, StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthenticated error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized, StatusUnauthenticated)
}

// IsForbidden checks if the error is a permission denied error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden, StatusPermissionDenied)
}

func hasStatus(err error, code int, status string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == code || apiErr.Status == status
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return errResp.StatusCode == code
	}

	return false
}

// ParseResponseError parses an error response body.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	errResp := &ResponseError{StatusCode: statusCode, Body: data}

	var envelope struct {
		Error *APIError `json:"error"`
	}

	if len(data) > 0 && json.Unmarshal(data, &envelope) == nil && envelope.Error != nil {
		errResp.Err = envelope.Error
	}

	return errResp
}
