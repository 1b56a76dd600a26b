package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/platform/obs"
	"nursery-locator/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "nursery:session:"

// Redis-backed SessionStore. Each session is a JSON value whose expiry is
// refreshed on every Save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return keyPrefix + id }

func (r *RedisStore) Get(ctx context.Context, id string) (_ *domain.SessionState, err error) {
	defer obs.Time(ctx, "sessions.redis.Get")(&err)

	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis session store: get %s: %w", id, err)
	}

	var s domain.SessionState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("redis session store: decode %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *domain.SessionState) (err error) {
	defer obs.Time(ctx, "sessions.redis.Save")(&err)

	if s == nil || s.ID == "" {
		return errors.New("redis session store: session id is required")
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis session store: encode %s: %w", s.ID, err)
	}

	if err := r.rdb.Set(ctx, sessionKey(s.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis session store: set %s: %w", s.ID, err)
	}
	return nil
}

// Open a client from address and database index and verify it with PING.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("open redis %s: %w", addr, err)
	}
	return rdb, nil
}
