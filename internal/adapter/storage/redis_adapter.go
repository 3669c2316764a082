package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const prefKeyPrefix = "pref:"

// RedisAdapter persists UI preference flags in Redis.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetFlag(ctx context.Context, key string, value bool) error {
	v := "0"
	if value {
		v = "1"
	}
	return r.client.Set(ctx, prefKeyPrefix+key, v, 0).Err()
}

func (r *RedisAdapter) GetFlag(ctx context.Context, key string) (bool, error) {
	v, err := r.client.Get(ctx, prefKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}
