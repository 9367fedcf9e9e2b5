package sanpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiterDisabled(t *testing.T) {
	l := newHostLimiter(0)
	assert.Nil(t, l)
	assert.NoError(t, l.Wait(context.Background(), "https://example.com/a"))
}

func TestHostLimiterSpacesSameHost(t *testing.T) {
	l := newHostLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "https://a.example.com/1"))
	require.NoError(t, l.Wait(ctx, "https://b.example.com/1"))
	assert.Less(t, time.Since(start), 40*time.Millisecond, "different hosts do not wait on each other")

	require.NoError(t, l.Wait(ctx, "https://a.example.com/2"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiterRejectsBadURL(t *testing.T) {
	l := newHostLimiter(time.Millisecond)

	assert.Error(t, l.Wait(context.Background(), "/relative/path"))
}
