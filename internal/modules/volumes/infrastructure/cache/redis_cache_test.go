package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/limbgen/internal/modules/volumes/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_SetGetExpire(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := cache.NewRedisCache(client)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "results/a_seg.nii.gz")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "results/a_seg.nii.gz", "http://cdn/a?sig", 30*time.Minute))

	ref, ok, err := c.Get(ctx, "results/a_seg.nii.gz")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://cdn/a?sig", ref)
	assert.True(t, mr.Exists("limbgen:volume-ref:results/a_seg.nii.gz"))

	mr.FastForward(31 * time.Minute)
	_, ok, err = c.Get(ctx, "results/a_seg.nii.gz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	c := cache.NewRedisCache(client)
	_, _, err = c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "k", "v", time.Minute))
}
