package errors

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestValidationError(t *testing.T) {
	err := NewValidationError("token", "API token is required")
	assert.Equal(t, "validation failed for token: API token is required", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrInvalidInput)
	assert.Equal(t, "validation error", Kind(err))

	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}

func TestTransportError(t *testing.T) {
	err := NewTransportError("GET", "https://localhost:44443/v1/version/", timeoutErr{})
	assert.True(t, err.Timeout())
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "i/o timeout")
	assert.Equal(t, "transport error", Kind(err))

	refused := NewTransportError("GET", "https://localhost:1/", New("connection refused"))
	assert.False(t, refused.Timeout())
	assert.NotErrorIs(t, refused, ErrTimeout)
	assert.ErrorIs(t, NewTransportError("GET", "u", context.Canceled), context.Canceled)
}

func TestApplicationError(t *testing.T) {
	err := NewApplicationError(404, "404 Not Found", "not found")
	assert.Equal(t, "404 Not Found: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "application error", Kind(err))

	denied := NewApplicationError(401, "", "")
	assert.Equal(t, "401 Unauthorized", denied.Error())
	assert.ErrorIs(t, denied, ErrUnauthorized)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "error", Kind(New("boom")))
}
