package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-portal/internal/domain/session"
)

func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// SessionBackend keeps session slots as plain redis strings under
// "session:<sid>:<slot>". Every Set refreshes the slot's TTL.
type SessionBackend struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionBackend(rdb *redis.Client, ttl time.Duration) *SessionBackend {
	return &SessionBackend{rdb: rdb, ttl: ttl}
}

func (b *SessionBackend) Scope(sessionID string) session.Store {
	return &sessionStore{rdb: b.rdb, ttl: b.ttl, prefix: "session:" + sessionID + ":"}
}

type sessionStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func (s *sessionStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrNotFound
	}
	return v, err
}

func (s *sessionStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *sessionStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.rdb.Del(ctx, full...).Err()
}
