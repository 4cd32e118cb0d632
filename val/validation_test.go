package val

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Timeout int `validate:"gte=0"`
}

func TestValidate_NoErrors(t *testing.T) {
	assert.Nil(t, Validate(sample{Timeout: 5}))
}

func TestValidate_FieldError(t *testing.T) {
	err := Validate(sample{Timeout: -1})
	require.NotNil(t, err)
	require.True(t, err.HasErrors())
	assert.Contains(t, err.Errors[0].Field, "Timeout")
	assert.Contains(t, err.Error(), "Timeout")
}

func TestValidationError_HasErrors_Nil(t *testing.T) {
	var err *ValidationError
	assert.False(t, err.HasErrors())
	assert.Equal(t, "validation failed", err.Error())
}
