package persistence

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// SessionStoreType selects the backing driver for session state.
type SessionStoreType string

const (
	SessionStoreMemory SessionStoreType = "memory"
	SessionStoreRedis  SessionStoreType = "redis"
)

// SessionOption is a functional option for configuring a session store.
type SessionOption func(*sessionStoreConfig)

type sessionStoreConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithRedisClient sets the Redis client for the Redis driver.
func WithRedisClient(client *redis.Client) SessionOption {
	return func(c *sessionStoreConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the expiry applied to Redis session keys.
func WithRedisTTL(ttl time.Duration) SessionOption {
	return func(c *sessionStoreConfig) {
		c.redisTTL = ttl
	}
}

// NewSessionStore creates a session store for the given driver type.
// The Redis driver requires WithRedisClient.
func NewSessionStore(storeType SessionStoreType, opts ...SessionOption) (domain.SessionStore, error) {
	cfg := &sessionStoreConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case SessionStoreMemory:
		return newMemorySessionStore(), nil
	case SessionStoreRedis:
		if cfg.redisClient == nil {
			return nil, domain.ErrInvalidConfig
		}
		return newRedisSessionStore(cfg.redisClient, cfg.redisTTL), nil
	default:
		return nil, domain.ErrInvalidStoreType
	}
}
