package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "degenerate column error type", errType: ErrTypeDegenerateColumn, expected: "DEGENERATE_COLUMN"},
		{name: "missing column error type", errType: ErrTypeMissingColumn, expected: "MISSING_COLUMN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppValidationError("precision must be positive"),
			expected: "[VALIDATION] precision must be positive",
		},
		{
			name:     "with cause",
			err:      NewStorageError("failed to open input", fmt.Errorf("permission denied")),
			expected: "[STORAGE] failed to open input: permission denied",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("input file"),
			expected: "[NOT_FOUND] input file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParsingError("bad csv", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestDegenerateColumnError(t *testing.T) {
	err := NewDegenerateColumnError("total_bedrooms")

	assert.True(t, errors.Is(err, ErrDegenerateColumn))
	assert.Equal(t, ErrTypeDegenerateColumn, err.Type)
	assert.Equal(t, "total_bedrooms", err.Context["column"])
	assert.Contains(t, err.Error(), "total_bedrooms")

	wrapped := fmt.Errorf("impute stage: %w", err)
	assert.True(t, errors.Is(wrapped, ErrDegenerateColumn))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeDegenerateColumn, appErr.Type)
}

func TestMissingColumnError(t *testing.T) {
	err := NewMissingColumnError(".geo")

	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Equal(t, "[MISSING_COLUMN] column \".geo\": required column not found", err.Error())
}

func TestIsType(t *testing.T) {
	inner := NewDegenerateColumnError("a")
	outer := NewAppError(ErrTypeValidation, "pipeline aborted", inner)

	assert.True(t, IsType(outer, ErrTypeValidation))
	assert.True(t, IsType(outer, ErrTypeDegenerateColumn))
	assert.True(t, IsType(fmt.Errorf("wrap: %w", outer), ErrTypeDegenerateColumn))
	assert.False(t, IsType(outer, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeStorage))
	assert.False(t, IsType(nil, ErrTypeStorage))
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad row"}
	err.WithContext("line", 12).WithContext("file", "housing.csv")

	assert.Equal(t, 12, err.Context["line"])
	assert.Equal(t, "housing.csv", err.Context["file"])
}
