package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_ErrorMessage(t *testing.T) {
	cause := errors.New("dial refused")
	e := New(CodeInternal, "connect failed", cause)

	assert.Equal(t, "connect failed: dial refused", e.Error())
	assert.Equal(t, cause, e.Unwrap())
}

func TestError_ErrorMessage_NoCause(t *testing.T) {
	e := New(CodeValidation, "bad config", nil)
	assert.Equal(t, "bad config", e.Error())
}

func TestError_Is_MatchesByCode(t *testing.T) {
	a := New(CodeValidation, "first", nil)
	b := New(CodeValidation, "second", nil)
	c := New(CodeInternal, "third", nil)

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestError_WithContext(t *testing.T) {
	e := New(CodeInvalidInput, "bad field", nil)
	e.WithContext("field", "Timeout")

	assert.Equal(t, "Timeout", e.GetContext()["field"])
}

func TestErrInvalidInput_SetsFieldContext(t *testing.T) {
	e := ErrInvalidInput("Timeout", "must be non-negative")

	assert.Equal(t, CodeInvalidInput, e.GetCode())
	assert.Equal(t, "Timeout", e.GetContext()["field"])
	assert.Contains(t, e.Error(), "must be non-negative")
}

func TestErrValidation_And_ErrInternal(t *testing.T) {
	v := ErrValidation("invalid config", nil)
	assert.Equal(t, CodeValidation, v.GetCode())

	i := ErrInternal("boom", errors.New("cause"))
	assert.Equal(t, CodeInternal, i.GetCode())
	assert.Contains(t, i.Error(), "cause")
}

func TestPackageLevel_IsAsUnwrap(t *testing.T) {
	cause := errors.New("root")
	e := New(CodeInternal, "wrapped", cause)

	assert.True(t, Is(cause, cause))
	assert.Equal(t, cause, Unwrap(e))

	var target *Error
	assert.True(t, As(e, &target))
}
