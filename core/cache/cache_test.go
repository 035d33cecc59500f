package cache_test

import (
	"testing"
	"time"

	"github.com/lploc94/orbit/core/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProvider(t *testing.T) {
	t.Parallel()

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		_, found := c.Read("missing")
		assert.False(t, found)
	})

	t.Run("write then read round-trips", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		c.Write("users", []string{"u1", "u2"}, 0)

		v, found := c.Read("users")
		require.True(t, found)
		assert.Equal(t, []string{"u1", "u2"}, v)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		c.Write("k", 1, 0)
		time.Sleep(5 * time.Millisecond)

		_, found := c.Read("k")
		assert.True(t, found)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		c.Write("k", 1, time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, found := c.Read("k")
		assert.False(t, found)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("delete removes a key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		c.Write("k", 1, 0)
		c.Delete("k")

		_, found := c.Read("k")
		assert.False(t, found)
	})

	t.Run("delete missing key is a no-op", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		assert.NotPanics(t, func() { c.Delete("missing") })
	})

	t.Run("delete matching removes by predicate", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemoryProvider()
		c.Write("users:1", 1, 0)
		c.Write("users:2", 2, 0)
		c.Write("orders:1", 3, 0)

		c.DeleteMatching(func(key string) bool {
			return len(key) >= 6 && key[:6] == "users:"
		})

		assert.Equal(t, 1, c.Len())
		_, found := c.Read("orders:1")
		assert.True(t, found)
	})
}
