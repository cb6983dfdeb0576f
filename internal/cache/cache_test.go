package cache_test

import (
	"context"
	"testing"

	"cashcard_system/internal/cache"

	"github.com/stretchr/testify/require"
)

// A nil or client-less cache must behave as a silent miss so callers never
// branch on whether Redis is configured.
func TestDisabledCache(t *testing.T) {
	ctx := context.Background()

	var disabled *cache.Cache
	for _, c := range []*cache.Cache{disabled, cache.New(nil)} {
		var dest string
		found, err := c.Get(ctx, "key", &dest)
		require.NoError(t, err)
		require.False(t, found)

		require.NoError(t, c.Set(ctx, "key", "value"))
		require.NoError(t, c.Delete(ctx, "key"))
	}
}
