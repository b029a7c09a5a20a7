// Package ratelimit 提供本地令牌桶与 Redis 两种限流实现
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting
type RateLimiter interface {
	// Allow checks if the request is allowed for the given key and limit
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit defines the rate limit rule
type Limit struct {
	Rate   int
	Period time.Duration
	Burst  int
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
	RetryAfter time.Duration
}

// RedisRateLimiter implements RateLimiter using Redis
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisRateLimiter creates a new RedisRateLimiter
func NewRedisRateLimiter(rdb *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
	}
}

// Allow checks if the request is allowed
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	res, err := r.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}

// DefaultIdleTTL 本地限流桶的默认空闲回收时间
const DefaultIdleTTL = 10 * time.Minute

// LocalRateLimiter implements RateLimiter with in-process token buckets, one per key
// Buckets idle for longer than idleTTL and already refilled are swept lazily
type LocalRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localBucket
	idleTTL   time.Duration
	lastSweep time.Time
}

type localBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
	// refill 空桶恢复到满桶所需时间，回收满桶不改变限流结果
	refill time.Duration
}

// NewLocalRateLimiter creates a new LocalRateLimiter
func NewLocalRateLimiter() *LocalRateLimiter {
	return NewLocalRateLimiterWithTTL(DefaultIdleTTL)
}

// NewLocalRateLimiterWithTTL creates a LocalRateLimiter that evicts keys idle for ttl
func NewLocalRateLimiterWithTTL(ttl time.Duration) *LocalRateLimiter {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &LocalRateLimiter{
		limiters:  make(map[string]*localBucket),
		idleTTL:   ttl,
		lastSweep: time.Now(),
	}
}

// Allow checks if the request is allowed
func (l *LocalRateLimiter) Allow(_ context.Context, key string, limit Limit) (*Result, error) {
	if limit.Rate <= 0 || limit.Period <= 0 {
		return nil, fmt.Errorf("invalid limit: %+v", limit)
	}
	now := time.Now()
	lim := l.limiterFor(key, limit, now)

	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return &Result{Allowed: false, RetryAfter: -1}, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &Result{Allowed: false, RetryAfter: delay, ResetAfter: delay}, nil
	}

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return &Result{Allowed: true, Remaining: remaining}, nil
}

func (l *LocalRateLimiter) limiterFor(key string, limit Limit, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	b, ok := l.limiters[key]
	if !ok {
		interval := limit.Period / time.Duration(limit.Rate)
		b = &localBucket{
			lim:    rate.NewLimiter(rate.Every(interval), limit.Burst),
			refill: interval * time.Duration(limit.Burst),
		}
		l.limiters[key] = b
	}
	b.lastSeen = now
	return b.lim
}

func (l *LocalRateLimiter) sweep(now time.Time) {
	for key, b := range l.limiters {
		idle := now.Sub(b.lastSeen)
		if idle >= l.idleTTL && idle >= b.refill {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// Len 当前持有的限流桶数量
func (l *LocalRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
