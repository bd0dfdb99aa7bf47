package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/paveg/statdex/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestDatasetError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *errors.DatasetError
		expected string
	}{
		{
			name:     "Error with column",
			err:      errors.NewMissingColumnError("Load", "speed"),
			expected: "Load operation failed on column 'speed': required column not found in header",
		},
		{
			name:     "Error without column",
			err:      errors.NewInvalidInputError("WriteNames", "no names to write"),
			expected: "WriteNames operation failed: no names to write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDatasetError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewIOError("WriteNames", "writing names", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestDatasetError_Is(t *testing.T) {
	t.Run("sentinel matches any missing column", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", errors.NewMissingColumnError("Load", "hp"))

		assert.ErrorIs(t, err, errors.ErrMissingColumn)
		assert.NotErrorIs(t, err, errors.ErrUnknownAttribute)
	})

	t.Run("specific column must match when set", func(t *testing.T) {
		err := errors.NewMissingColumnError("Load", "hp")

		assert.ErrorIs(t, err, errors.NewMissingColumnError("Load", "hp"))
		assert.NotErrorIs(t, err, errors.NewMissingColumnError("Load", "speed"))
	})

	t.Run("different op does not match", func(t *testing.T) {
		err := errors.NewMissingColumnError("Load", "hp")

		assert.NotErrorIs(t, err, errors.NewMissingColumnError("Reload", "hp"))
	})

	t.Run("non dataset errors never match", func(t *testing.T) {
		err := errors.NewInvalidInputError("Export", "bad format")

		assert.False(t, err.Is(stderrors.New("bad format")))
	})
}

func TestPredefinedErrors(t *testing.T) {
	assert.Equal(t, "Load operation failed: dataset has no header record", errors.ErrNoHeader.Error())
	assert.Equal(t, "no data loaded", errors.ErrNoData.Error())
	assert.Equal(t, "required column not found in header", errors.ErrMissingColumn.Error())
	assert.ErrorIs(t, errors.NewUnknownAttributeError("Parse", "attack"), errors.ErrUnknownAttribute)
}
