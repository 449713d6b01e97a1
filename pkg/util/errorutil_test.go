package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewNotFound("product", nil)), "NOT_FOUND", http.StatusNotFound},
		{"bad gateway", NewBadGateway("catalog unavailable", errors.New("dial")), "UPSTREAM_FAILED", http.StatusBadGateway},
		{"internal error", NewInternalError(errors.New("decode")), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"plain error becomes internal", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBadGateway("reviews unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "reviews unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(signupForm{Email: "a@b.io", Password: "secret1", Confirm: "secret1"}))

	err := ValidateStruct(signupForm{Email: "not-an-email", Password: "123", Confirm: "456"})
	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "email", de.Details["email"])
	assert.Equal(t, "min=6", de.Details["password"])
	assert.Equal(t, "eqfield=Password", de.Details["confirmPassword"])
}
