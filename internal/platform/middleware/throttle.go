// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter and arms its expiry on first hit, atomically.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisWindowLimiter is a fixed-window limiter shared by every API replica.
type RedisWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	logger *slog.Logger
}

// NewRedisWindowLimiter builds a limiter allowing limit hits per key per window.
func NewRedisWindowLimiter(client *redis.Client, prefix string, limit int, window time.Duration, logger *slog.Logger) (*RedisWindowLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("middleware: window limiter requires positive limit and window")
	}
	return &RedisWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		logger: logger,
	}, nil
}

// Window returns the length of one counting window.
func (limiter *RedisWindowLimiter) Window() time.Duration {
	return limiter.window
}

// Allow reports whether key is still within quota. Redis failures fail closed.
func (limiter *RedisWindowLimiter) Allow(ctx context.Context, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := limiter.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s%s:%d", limiter.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, limiter.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		limiter.logger.Warn("throttle_redis_failed", slog.Any("error", err))
		return false
	}
	return count <= int64(limiter.limit)
}
