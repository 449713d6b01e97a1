package authstate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/config"
)

const defaultKeyPrefix = "storefront:token:"

// redisStore keeps session tokens in Redis so they survive restarts.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to Redis using the provided configuration. An unreachable
// server is logged, not fatal; readiness reports it.
func NewRedis(cfg config.RedisConfig, prefix string, ttl time.Duration, logger *zap.Logger) Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return NewRedisStore(client, prefix, ttl)
}

// NewRedisStore wraps an existing client. A zero ttl keeps tokens until logout.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *redisStore) Set(ctx context.Context, sessionID, token string) error {
	return s.client.Set(ctx, s.key(sessionID), token, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// Ping verifies Redis connectivity.
func (s *redisStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
