package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsridhar11/mbot123/internal/domain"
)

const sessionKeyPrefix = "session:"

// redisSessionStore keeps sessions in Redis with optimistic locking via
// WATCH/MULTI/EXEC. Keys expire after the configured TTL; the TTL is
// refreshed on every read and write, so an active conversation never
// expires underneath the user.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisSessionStore(client *redis.Client, ttl time.Duration) *redisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Create(ctx context.Context, data *domain.SessionData) error {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	val, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+data.ID, val, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*domain.SessionData, error) {
	key := sessionKeyPrefix + id
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data domain.SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}

	// Refresh TTL on read; a failed refresh is not worth failing the request.
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &data, nil
}

func (s *redisSessionStore) Update(ctx context.Context, data *domain.SessionData) error {
	key := sessionKeyPrefix + data.ID

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored domain.SessionData
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}
		if stored.Version != data.Version {
			return domain.ErrVersionConflict
		}

		data.Version++
		data.UpdatedAt = time.Now()

		newVal, err := json.Marshal(data)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newVal, s.ttl)
			return nil
		})
		return err
	}, key)
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *redisSessionStore) Close() error {
	return s.client.Close()
}
