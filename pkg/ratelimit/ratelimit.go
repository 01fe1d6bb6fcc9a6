// Package ratelimit provides per-key request limiters backed by Redis or process memory.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// counter increments a windowed key and returns the new count.
type counter interface {
	incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	client redis.Cmdable
}

func (r redisCounter) incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// WindowLimiter is a fixed-window counter shared across instances through Redis.
type WindowLimiter struct {
	store  counter
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter allows limit requests per key within each window.
func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, window time.Duration) *WindowLimiter {
	return newWindowLimiter(redisCounter{client: client}, prefix, limit, window)
}

func newWindowLimiter(store counter, prefix string, limit int, window time.Duration) *WindowLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &WindowLimiter{store: store, limit: limit, window: window, prefix: prefix, now: time.Now}
}

// Allow implements Limiter.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	windowKey := l.prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)

	count, err := l.store.incr(ctx, windowKey, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	d := Decision{Limit: l.limit, Allowed: count <= int64(l.limit)}
	if remaining := l.limit - int(count); remaining > 0 {
		d.Remaining = remaining
	}
	if !d.Allowed {
		windowEnd := time.Unix(0, (slot+1)*int64(l.window))
		d.RetryAfter = windowEnd.Sub(now)
	}
	return d, nil
}

// LocalLimiter keeps one token bucket per key in memory.
type LocalLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    int
	interval time.Duration
	maxKeys  int
	idleTTL  time.Duration
	now      func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter allows bursts of limit requests per key, refilling over window.
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LocalLimiter{
		buckets:  map[string]*bucket{},
		limit:    limit,
		interval: window / time.Duration(limit),
		maxKeys:  10000,
		idleTTL:  window,
		now:      time.Now,
	}
}

// Allow implements Limiter.
func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.evict(now)
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(l.interval), l.limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	d := Decision{Limit: l.limit}
	if b.limiter.AllowN(now, 1) {
		d.Allowed = true
	} else {
		d.RetryAfter = l.interval
	}
	if tokens := int(b.limiter.TokensAt(now)); tokens > 0 {
		d.Remaining = tokens
	}
	return d, nil
}

func (l *LocalLimiter) evict(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
}
