package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("user", "")))
	assert.True(t, IsAlreadyExists(NewAlreadyExistsError("user", "")))
	assert.True(t, IsValidation(NewValidationError("name", "is required")))
	assert.True(t, IsStorageUnavailable(NewStorageUnavailableError("proxy down", nil)))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsStorageUnavailable(NewNotFoundError("user", "")))
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading collection: %w", NewStorageUnavailableError("proxy down", nil))
	assert.True(t, IsStorageUnavailable(wrapped))

	wrapped = fmt.Errorf("get user: %w", NewNotFoundError("user", "user not found: id=u1"))
	assert.True(t, IsNotFound(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "custom message", NewNotFoundError("user", "custom message").Error())
	assert.Equal(t, "validation failed: name - is required", NewValidationError("name", "is required").Error())
	assert.Equal(t, "validation failed: is required", NewValidationError("", "is required").Error())
}

func TestStorageUnavailableUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageUnavailableError("proxy down", cause)

	assert.Equal(t, "proxy down: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
