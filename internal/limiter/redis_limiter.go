package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/geoapi/geo-service/internal/logger"
	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the window counter and sets its expiry on first use
var fixedWindowScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter shares fixed-window counters across instances through Redis.
// Key format: ratelimit:{key}:{window index}
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisLimiter connects to Redis and allows limit requests per window for each key
func NewRedisLimiter(addr, password string, db int, limit int, window time.Duration, log *logger.Logger) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	if log == nil {
		log = logger.NewDefault()
	}

	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: log.WithComponent("RedisLimiter"),
		now:    time.Now,
	}, nil
}

// Allow counts the request in the current window.
// Redis failures fail open so an outage of the limiter does not take the API down.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) bool {
	window := rl.now().UnixMilli() / rl.window.Milliseconds()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

	count, err := fixedWindowScript.Run(ctx, rl.client, []string{redisKey}, rl.window.Milliseconds()*2).Int64()
	if err != nil {
		rl.logger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed, allowing request")
		return true
	}

	return count <= rl.limit
}

// Close closes the Redis connection
func (rl *RedisLimiter) Close() error {
	return rl.client.Close()
}
