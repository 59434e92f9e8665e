// AngelaMos | 2026
// redis_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/feedback-backend/internal/config"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{
		URL:          "redis://:secret@cache:6380/2",
		PoolSize:     7,
		MinIdleConns: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 3, opts.MinIdleConns)
}

func TestRedisOptions_KeepsLibraryDefaults(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{URL: "redis://localhost:6379/0"})
	require.NoError(t, err)

	assert.Equal(t, 0, opts.PoolSize)
	assert.Equal(t, 0, opts.MinIdleConns)
}

func TestRedisOptions_BadURL(t *testing.T) {
	_, err := redisOptions(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}
