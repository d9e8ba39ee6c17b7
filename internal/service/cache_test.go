package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService(t *testing.T) {
	ctx := context.Background()
	cache := service.NewCacheService(service.CacheConfig{TTL: time.Minute, CleanupFreq: time.Minute})
	defer cache.Close()

	type entry struct {
		Name string
	}

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", entry{Name: "Acme"}))

		var got entry
		require.NoError(t, cache.Get(ctx, "k", &got))
		assert.Equal(t, "Acme", got.Name)
	})

	t.Run("miss", func(t *testing.T) {
		var got entry
		assert.ErrorIs(t, cache.Get(ctx, "missing", &got), domain.ErrNotFound)
	})

	t.Run("empty key", func(t *testing.T) {
		assert.ErrorIs(t, cache.Set(ctx, "", 1), domain.ErrInvalidInput)
	})

	t.Run("get or set fetches once", func(t *testing.T) {
		calls := 0
		fetch := func() (interface{}, error) {
			calls++
			return entry{Name: "Globex"}, nil
		}

		var first, second entry
		require.NoError(t, cache.GetOrSet(ctx, "g", &first, fetch))
		require.NoError(t, cache.GetOrSet(ctx, "g", &second, fetch))
		assert.Equal(t, 1, calls)
		assert.Equal(t, "Globex", second.Name)
	})

	t.Run("get or set does not cache failures", func(t *testing.T) {
		boom := errors.New("boom")
		var got entry
		err := cache.GetOrSet(ctx, "f", &got, func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, cache.Get(ctx, "f", &got), domain.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "d", entry{}))
		require.NoError(t, cache.Delete(ctx, "d"))
		var got entry
		assert.ErrorIs(t, cache.Get(ctx, "d", &got), domain.ErrNotFound)
	})
}
