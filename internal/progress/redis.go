package progress

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/csheth/chronicle/internal/streak"
)

// RedisStore keeps the progress keys as plain redis strings.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore wraps an existing client. prefix namespaces the keys, for
// example per user.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis builds a client from a redis:// URL, falling back to treating
// the value as a host:port address.
func DialRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

func (r *RedisStore) Load(ctx context.Context) (streak.State, error) {
	keys := []string{KeyXP, KeyStreak, KeyLastWrite}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = r.key(key)
	}
	raw, err := r.client.MGet(ctx, full...).Result()
	if err != nil {
		return streak.State{}, fmt.Errorf("load progress from redis: %w", err)
	}
	values := make(map[string]string, len(keys))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			values[keys[i]] = s
		}
	}
	return decode(values), nil
}

func (r *RedisStore) Save(ctx context.Context, state streak.State) error {
	pairs := make([]any, 0, 6)
	for key, value := range encode(state) {
		pairs = append(pairs, r.key(key), value)
	}
	if err := r.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("save progress to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + ":" + name
}
