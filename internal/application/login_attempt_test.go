package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(store AttemptStore) *LoginAttemptService {
	return NewLoginAttemptService(store, 5, 15*time.Minute, nil)
}

func TestGuardLocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	guard := newGuard(newFakeAttemptStore())

	for i := 0; i < 4; i++ {
		require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))
		locked, err := guard.IsLocked(ctx, "dev@example.com")
		require.NoError(t, err)
		assert.False(t, locked, "should not lock before attempt %d reaches the max", i+1)
	}

	require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))
	locked, err := guard.IsLocked(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestGuardSuccessClearsState(t *testing.T) {
	ctx := context.Background()
	guard := newGuard(newFakeAttemptStore())

	for i := 0; i < 5; i++ {
		require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))
	}
	locked, err := guard.IsLocked(ctx, "dev@example.com")
	require.NoError(t, err)
	require.True(t, locked)

	require.NoError(t, guard.RecordSuccess(ctx, "dev@example.com"))

	locked, err = guard.IsLocked(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.False(t, locked)

	remaining, err := guard.RemainingAttempts(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
}

func TestGuardRemainingAttempts(t *testing.T) {
	ctx := context.Background()
	guard := newGuard(newFakeAttemptStore())

	remaining, err := guard.RemainingAttempts(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))
	require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))

	remaining, err = guard.RemainingAttempts(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestGuardRemainingAttemptsNeverNegative(t *testing.T) {
	ctx := context.Background()
	guard := newGuard(newFakeAttemptStore())

	for i := 0; i < 8; i++ {
		require.NoError(t, guard.RecordFailure(ctx, "dev@example.com"))
	}
	remaining, err := guard.RemainingAttempts(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestGuardTracksIdentifiersIndependently(t *testing.T) {
	ctx := context.Background()
	guard := newGuard(newFakeAttemptStore())

	for i := 0; i < 5; i++ {
		require.NoError(t, guard.RecordFailure(ctx, "a@example.com"))
	}

	locked, err := guard.IsLocked(ctx, "b@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}
