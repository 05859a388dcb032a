package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("CASE_NOT_FOUND", "case x not found", cause)

	assert.Equal(t, "CASE_NOT_FOUND: case x not found: boom", err.Error())
	assert.True(t, errors.Is(err, cause))

	bare := NewAppError("CONFIG_ERROR", "bad value", nil)
	assert.Equal(t, "CONFIG_ERROR: bad value", bare.Error())
}

func TestToGRPCError(t *testing.T) {
	assert.NoError(t, ToGRPCError(nil))

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"not found", NewAppError("CASE_NOT_FOUND", "case x not found", ErrNotFound), codes.NotFound},
		{"invalid input", NewAppError("CONFIG_ERROR", "bad value", ErrInvalidInput), codes.InvalidArgument},
		{"unclassified", errors.New("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(ToGRPCError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))

	cause := errors.New("boom")
	err := WrapError(cause, "reading receipt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "reading receipt: boom", err.Error())
}
