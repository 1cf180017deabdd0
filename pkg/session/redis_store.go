package session

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "worktrack:session:"

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromURL accepts either a redis:// URL or a bare host:port.
func NewRedisStoreFromURL(addr string) (*RedisStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	return NewRedisStore(redis.NewClient(opts)), nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get session")
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	if s.IsExpired() {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := s.TTL()
	if ttl == 0 {
		return r.Delete(ctx, s.ID)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
