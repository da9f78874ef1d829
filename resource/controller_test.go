package resource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	t.Run("nil controller is a noop", func(t *testing.T) {
		var c *Controller

		assert.True(t, c.TryAcquireMemory(1<<30))
		c.ReleaseMemory(1 << 30)
		assert.Equal(t, int64(0), c.MemoryUsage())
		require.NoError(t, c.AcquireMemory(context.Background(), 1))
		require.NoError(t, c.AcquireIO(context.Background(), 1))
	})

	t.Run("tracks usage without a limit", func(t *testing.T) {
		c := NewController(Config{})

		assert.True(t, c.TryAcquireMemory(100))
		assert.True(t, c.TryAcquireMemory(50))
		assert.Equal(t, int64(150), c.MemoryUsage())

		c.ReleaseMemory(100)
		assert.Equal(t, int64(50), c.MemoryUsage())
	})

	t.Run("enforces the memory limit", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})

		assert.True(t, c.TryAcquireMemory(60))
		assert.False(t, c.TryAcquireMemory(60))
		assert.Equal(t, int64(60), c.MemoryUsage())

		c.ReleaseMemory(60)
		assert.True(t, c.TryAcquireMemory(100))
		c.ReleaseMemory(100)
	})

	t.Run("blocking acquire honors context cancellation", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})
		require.True(t, c.TryAcquireMemory(100))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := c.AcquireMemory(ctx, 1)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		c.ReleaseMemory(100)
	})

	t.Run("zero sized operations are free", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 1})

		assert.True(t, c.TryAcquireMemory(0))
		assert.True(t, c.TryAcquireMemory(-5))
		assert.Equal(t, int64(0), c.MemoryUsage())
	})
}

func TestRateLimitedIO(t *testing.T) {
	t.Run("writes pass through", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

		var buf bytes.Buffer
		w := NewRateLimitedWriter(context.Background(), &buf, c)

		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "hello", buf.String())
	})

	t.Run("reads pass through", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

		r := NewRateLimitedReader(context.Background(), bytes.NewReader([]byte("world")), c)

		p := make([]byte, 5)
		n, err := r.Read(p)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(p))
	})

	t.Run("unlimited without an io limit", func(t *testing.T) {
		c := NewController(Config{})
		require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	})
}
