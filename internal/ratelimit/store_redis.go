package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const windowKeyPrefix = "rl:issue:"

// RedisStore keeps window counters in Redis so the limit holds across
// instances. INCR plus first-hit EXPIRE gives an atomic enough fixed window
// for this purpose.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := windowKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment rate limit window: %w", err)
	}
	return incr.Val(), nil
}
