// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/constants"
)

// RedisAttemptGuard implements AttemptGuard with one expiring counter per identifier.
//
// The window starts at the first failure; the counter disappears when it ends.
type RedisAttemptGuard struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

// NewRedisAttemptGuard creates a Redis-backed AttemptGuard.
func NewRedisAttemptGuard(client redis.UniversalClient, maxAttempts int, window time.Duration) *RedisAttemptGuard {
	return &RedisAttemptGuard{client: client, maxAttempts: maxAttempts, window: window}
}

// attemptsKey keeps the identifier as given: logins match it case-sensitively.
func attemptsKey(identifier string) string {
	return constants.RedisPrefixLoginAttempts + identifier
}

/*
Check reports a lockout once the failure count reaches the limit.

Returns:
  - error: apperr.RateLimited with the seconds left in the window, or connectivity errors
*/
func (guard *RedisAttemptGuard) Check(ctx context.Context, identifier string) error {
	key := attemptsKey(identifier)

	count, err := guard.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	if count < guard.maxAttempts {
		return nil
	}

	ttl, err := guard.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis_login_attempts_ttl_failed: %w", err)
	}
	if ttl <= 0 {
		ttl = guard.window
	}

	return apperr.RateLimited(int(math.Ceil(ttl.Seconds())))
}

// RecordFailure increments the counter, starting the window on the first failure.
func (guard *RedisAttemptGuard) RecordFailure(ctx context.Context, identifier string) error {
	key := attemptsKey(identifier)

	_, err := guard.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, guard.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}
	return nil
}

// Reset deletes the counter.
func (guard *RedisAttemptGuard) Reset(ctx context.Context, identifier string) error {
	if err := guard.client.Del(ctx, attemptsKey(identifier)).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_delete_failed: %w", err)
	}
	return nil
}
