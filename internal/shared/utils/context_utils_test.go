package utils

import (
	"context"
	"testing"

	"session-guard/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
)

func TestGetSetContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithUserID(ctx, "42")
	ctx = WithRequestID(ctx, "req1")
	ctx = WithOperation(ctx, "opX")

	userID, err := GetUserIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "42", userID)

	reqID, err := GetRequestIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "req1", reqID)

	assert.Equal(t, "opX", ctx.Value(contextkeys.OperationKey))
	assert.True(t, HasRequestID(ctx))
}

func TestContextUtils_MissingValues(t *testing.T) {
	ctx := context.Background()

	_, err := GetUserIDFromContext(ctx)
	assert.Error(t, err)
	assert.Equal(t, "userID not found in context", err.Error())

	_, err = GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotFound)

	assert.False(t, HasRequestID(ctx))
}

func TestContextUtils_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, 42)
	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, 7)

	_, err := GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserIDNotString)

	_, err = GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotString)
	assert.False(t, HasRequestID(ctx))
}
