package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationExpires(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Revoke(ctx, "jti-1", clock.Add(time.Hour)))
	require.NoError(t, m.Revoke(ctx, "jti-old", clock.Add(-time.Second)))

	revoked, err := m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "jti-old")
	assert.False(t, revoked)

	clock = clock.Add(2 * time.Hour)
	revoked, _ = m.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}

func TestMemoryIncrFixedWindow(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }

	for i := int64(1); i <= 3; i++ {
		n, err := m.Incr(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	clock = clock.Add(time.Minute)
	n, err := m.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
