package cache

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("connects to running server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		client, err := NewRedisClient(&config.RedisConfig{Host: mr.Host(), Port: port})

		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NoError(t, client.Close())
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)
		mr.Close()

		client, err := NewRedisClient(&config.RedisConfig{Host: "127.0.0.1", Port: port})

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
