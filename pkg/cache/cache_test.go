package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestStore_GetSet(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	v, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	mr.FastForward(2 * time.Minute)
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestStore_HitWindow(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := s.Hit(ctx, "login:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.True(t, mr.Exists("sophies:login:1.2.3.4"))

	mr.FastForward(61 * time.Second)
	n, err := s.Hit(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
