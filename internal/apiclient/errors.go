package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any 401 answer from the help-desk API.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// APIError is a non-2xx answer. Message and Errors come from the body when
// the API sent its usual {"message": ..., "errors": {...}} shape.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("help-desk API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("help-desk API error (%d)", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// FieldError returns the first message the API reported for field.
func (e *APIError) FieldError(field string) string {
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	var payload struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = strings.TrimSpace(payload.Message)
		if e.Message == "" {
			e.Message = strings.TrimSpace(payload.Error)
		}
		e.Errors = payload.Errors
	}
	return e
}

// Message returns the server's own error text, or fallback when the error
// did not come from the API or carried no message.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

func IsUnprocessable(err error) bool { return StatusCode(err) == http.StatusUnprocessableEntity }

// FieldErrors flattens validation errors to one message per field.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || len(apiErr.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(apiErr.Errors))
	for k := range apiErr.Errors {
		out[k] = apiErr.FieldError(k)
	}
	return out
}
