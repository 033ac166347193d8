// Package errors defines the failures a request execution can end in.
// Every execution ends in success or exactly one of ValidationError,
// TransportError or ApplicationError.
package errors

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Aliases so callers need only one errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrInvalidInput matches every ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout matches a TransportError caused by a timeout.
	ErrTimeout = errors.New("operation timed out")

	// ErrNotFound matches an ApplicationError with status 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized matches an ApplicationError with status 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is missing or invalid operator input. The request was not sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransportError is a failure before any HTTP response arrived.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying cause was a timeout.
func (e *TransportError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTimeout && e.Timeout()
}

func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{Method: method, URL: url, Err: err}
}

// ApplicationError is an HTTP response other than 200. Body is the raw text.
type ApplicationError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ApplicationError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Body == "" {
		return status
	}
	return fmt.Sprintf("%s: %s", status, e.Body)
}

func (e *ApplicationError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

func NewApplicationError(statusCode int, status, body string) *ApplicationError {
	return &ApplicationError{StatusCode: statusCode, Status: status, Body: body}
}

// Kind names the class of err for display and exit codes.
func Kind(err error) string {
	var (
		ve *ValidationError
		te *TransportError
		ae *ApplicationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "validation error"
	case errors.As(err, &te):
		return "transport error"
	case errors.As(err, &ae):
		return "application error"
	default:
		return "error"
	}
}
