package registry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/domain/model"
)

// DefaultKeyPrefix namespaces registry keys in redis
const DefaultKeyPrefix = "sentiment:models"

// RedisStore keeps artifacts in redis. Versions of a model live in a sorted set
// and the files of one version in a hash.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a RedisStore on an existing client
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) versionsKey(modelName string) string {
	return fmt.Sprintf("%s:%s:versions", s.prefix, modelName)
}

func (s *RedisStore) filesKey(modelName, version string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, modelName, version)
}

func (s *RedisStore) Versions(ctx context.Context, modelName string) ([]string, error) {
	if err := validateName("model name", modelName); err != nil {
		return nil, err
	}
	versions, err := s.client.ZRange(ctx, s.versionsKey(modelName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: model %s", model.ErrArtifactNotFound, modelName)
	}
	return versions, nil
}

func (s *RedisStore) Fetch(ctx context.Context, modelName, version, file string) ([]byte, error) {
	if err := validateRef(modelName, version, file); err != nil {
		return nil, err
	}
	data, err := s.client.HGet(ctx, s.filesKey(modelName, version), file).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s/%s/%s", model.ErrArtifactNotFound, modelName, version, file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artifact: %w", err)
	}
	return data, nil
}

// Publish writes all files of a version and registers the version in one transaction
func (s *RedisStore) Publish(ctx context.Context, modelName, version string, files map[string][]byte) error {
	if err := validateName("model name", modelName); err != nil {
		return err
	}
	if err := validateName("version", version); err != nil {
		return err
	}

	var score float64
	if n, err := strconv.ParseUint(version, 10, 64); err == nil {
		score = float64(n)
	}

	pipe := s.client.TxPipeline()
	for name, data := range files {
		pipe.HSet(ctx, s.filesKey(modelName, version), name, data)
	}
	pipe.ZAdd(ctx, s.versionsKey(modelName), redis.Z{Score: score, Member: version})
	_, err := pipe.Exec(ctx)
	return err
}
