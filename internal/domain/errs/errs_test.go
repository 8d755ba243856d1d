package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		other    error
	}{
		{"validation", NewValidation("email", "must be a valid email"), ErrValidation, ErrConflict},
		{"conflict", NewConflict(EntityAccount, "email"), ErrConflict, ErrNotFound},
		{"not found", NewNotFound(EntityProduct, "p-1"), ErrNotFound, ErrValidation},
		{"stale", NewStale(EntityAccount, "a-1"), ErrStale, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("create account: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.NotErrorIs(t, wrapped, tt.other)
		})
	}
}

func TestErrorsAsExposesDetails(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewConflict(EntityAccount, "username"))
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "username", ce.Field)
	assert.Equal(t, "account with this username already exists", ce.Error())
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"username": "is required",
		"email":    "must be a valid email",
	}}
	assert.Equal(t, "validation failed: email must be a valid email; username is required", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestStaleErrorIsAConflict(t *testing.T) {
	err := fmt.Errorf("update account: %w", NewStale(EntityAccount, "a-1"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, `update account: account "a-1" was modified concurrently`, err.Error())

	var ce *ConflictError
	assert.False(t, errors.As(err, &ce))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, `wishlist entry "a/p" not found`, NewNotFound(EntityWishlistEntry, "a/p").Error())
	assert.Equal(t, "account not found", NewNotFound(EntityAccount, "").Error())
}
