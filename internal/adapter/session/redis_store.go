package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/valeradishlevii/trade-api-sample/internal/port"
)

var _ port.SessionStore = (*RedisStore)(nil)

// RedisStore keeps session token → customer id with a fixed TTL. Setting a
// token overwrites any previous identity under it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, password string, db int, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{
		client: rdb,
		ttl:    ttl,
	}
}

func key(token string) string { return "session:" + token }

func (s *RedisStore) Get(ctx context.Context, token string) (int64, error) {
	v, err := s.client.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, port.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (s *RedisStore) Set(ctx context.Context, token string, customerID int64) error {
	return s.client.Set(ctx, key(token), strconv.FormatInt(customerID, 10), s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}
