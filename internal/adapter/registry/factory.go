package registry

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/config"
)

// NewStore builds the Store selected by cfg.Backend
func NewStore(cfg *config.RegistryConfig, redisClient *redis.Client) (Store, error) {
	switch cfg.Backend {
	case "file":
		return NewFileStore(cfg.Root), nil
	case "http":
		if cfg.Endpoint == "" {
			return nil, errors.New("registry endpoint is required")
		}
		return NewHTTPStore(cfg.Endpoint, cfg.Timeout), nil
	case "redis":
		if redisClient == nil {
			return nil, errors.New("redis client is required")
		}
		return NewRedisStore(redisClient, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported registry backend %q", cfg.Backend)
	}
}
