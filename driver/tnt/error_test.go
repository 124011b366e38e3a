package tnt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replikv/go-kvtxn/driver/tnt"
)

func TestEncodingError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		error    tnt.EncodingError
		expected string
	}{
		{
			name: "operation encoding error with text and error",
			error: tnt.EncodingError{
				ObjectType: "operation",
				Text:       "encode get operation key",
				Err:        errors.New("encoding failed"),
			},
			expected: "failed to encode operation, encode get operation key: encoding failed",
		},
		{
			name: "predicate encoding error with text and error",
			error: tnt.EncodingError{
				ObjectType: "predicate",
				Text:       "encode target",
				Err:        errors.New("marshal error"),
			},
			expected: "failed to encode predicate, encode target: marshal error",
		},
		{
			name: "encoding error with empty text",
			error: tnt.EncodingError{
				ObjectType: "operation",
				Text:       "",
				Err:        errors.New("error"),
			},
			expected: "failed to encode operation: error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.error.Error())
		})
	}
}

func TestEncodingError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	wrapped := tnt.NewPredicateEncodingError("encode value", cause)

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, cause)
}

func TestNewEncodingErrorsNilCause(t *testing.T) {
	t.Parallel()

	require.NoError(t, tnt.NewPredicateEncodingError("encode value", nil))
	require.NoError(t, tnt.NewOperationEncodingError("encode key", nil))
	require.NoError(t, tnt.NewResponseDecodingError("decode body", nil))
}

func TestDecodingError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("short read")
	err := tnt.NewResponseDecodingError("decode body", cause)

	require.Error(t, err)
	assert.Equal(t, "failed to decode txn response, decode body: short read", err.Error())
	assert.ErrorIs(t, err, cause)
}
