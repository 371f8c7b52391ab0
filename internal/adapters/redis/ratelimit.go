package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/cart/internal/adapters/http/middleware"
)

// fixed window counter; the window starts at the first hit
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

type RateLimiter struct {
	client *Client
	prefix string
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client, prefix: "cart:ratelimit"}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if window < time.Millisecond {
		window = time.Millisecond
	}
	redisKey := fmt.Sprintf("%s:%s", r.prefix, key)
	count, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return count <= limit, nil
}
