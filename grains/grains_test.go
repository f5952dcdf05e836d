package grains

import (
	"testing"
	"time"

	"graintrade/rdx"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestListCacheable(t *testing.T) {
	assert.True(t, listCacheable("", "", 0, defaultListLimit))

	// a custom limit must never share the cache key with the default page
	assert.False(t, listCacheable("", "", 0, 2))
	assert.False(t, listCacheable("", "", 0, 200))

	assert.False(t, listCacheable("wheat", "", 0, defaultListLimit))
	assert.False(t, listCacheable("", "Rice", 0, defaultListLimit))
	assert.False(t, listCacheable("", "", defaultListLimit, defaultListLimit))
}

func TestInvalidateListCacheBestEffort(t *testing.T) {
	old := rdx.Conn
	t.Cleanup(func() { rdx.Conn = old })

	// unreachable redis: invalidation logs and moves on
	rdx.Conn = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	assert.NotPanics(t, func() { invalidateListCache() })
}
