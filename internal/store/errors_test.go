package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrSnapshotNotFound", err: ErrSnapshotNotFound, expected: true},
		{
			name:     "wrapped ErrSnapshotNotFound",
			err:      fmt.Errorf("failed to load learner: %w", ErrSnapshotNotFound),
			expected: true,
		},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("learner_snapshot", "get", "no row", ErrSnapshotNotFound),
			expected: true,
		},
		{name: "version conflict", err: ErrVersionConflict, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrNotFound))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	err := NewStoreError("learner_snapshot", "save", "write failed", cause)
	assert.Equal(t, "save operation on learner_snapshot failed: write failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("learner_snapshot", "get", "bad row", nil)
	assert.Equal(t, "get operation on learner_snapshot failed: bad row", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
