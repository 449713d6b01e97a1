package authstate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/config"
)

// Store persists one bearer token string per session.
type Store interface {
	// Get returns the stored token, or "" when the session has none.
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, token string) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore selects the backend named by the session config.
func NewStore(cfg config.SessionConfig, redisCfg config.RedisConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Store {
	case "", "memory":
		logger.Info("session tokens kept in memory")
		return NewMemoryStore(), nil
	case "redis":
		return NewRedis(redisCfg, cfg.KeyPrefix, cfg.TTL(), logger), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
