package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

type request struct {
	Text   string `validate:"required"`
	Length int    `validate:"omitempty,min=50,max=500"`
	Method string `validate:"omitempty,oneof=paragraph sentence custom"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(request{Text: "hello", Length: 50, Method: "sentence"}))
	assert.NoError(t, Struct(&request{Text: "hello"}))
}

func TestStruct_FieldErrors(t *testing.T) {
	err := Struct(request{Length: 10, Method: "chapter"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{
		{Field: "Text", Message: "is required"},
		{Field: "Length", Message: "must be at least 50"},
		{Field: "Method", Message: "must be one of [paragraph sentence custom]"},
	}, verr.Fields)
	assert.Contains(t, err.Error(), "Text is required")
}

func TestStruct_NestedSettings(t *testing.T) {
	settings := domain.DefaultAppSettings()
	require.NoError(t, Struct(settings))

	settings.Server.Port = 0
	settings.Jobs.Extensions = []string{"txt"}

	var verr *Error
	require.True(t, errors.As(Struct(settings), &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "Jobs.Extensions[0]", verr.Fields[0].Field)
	assert.Equal(t, "Server.Port", verr.Fields[1].Field)
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct("plain string")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
