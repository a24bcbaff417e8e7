package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "is required"},
		{Field: "email", Message: "must be a valid email address"},
	}
	assert.Equal(t, "title is required; email must be a valid email address", errs.Error())
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
}

func TestIsValidationError(t *testing.T) {
	single := ValidationError{Field: "title", Message: "is required"}
	assert.True(t, IsValidationError(single))
	assert.True(t, IsValidationError(ValidationErrors{single}))
	assert.True(t, IsValidationError(fmt.Errorf("bad request: %w", single)))
	assert.False(t, IsValidationError(fmt.Errorf("boom")))
}
