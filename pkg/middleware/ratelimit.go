package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"movie-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter decides whether one more request for key is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit membatasi request per client IP. Error dari limiter tidak memblokir request.
func RateLimit(limiter RateLimiter, perMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Path + ":" + clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(perMinute))
			if !allowed {
				logger.Info("Rate limit exceeded", zap.String("key", key))
				w.Header().Set("Retry-After", "60")
				utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewRateLimiter returns a Redis-backed limiter when client is set, otherwise an in-process one.
func NewRateLimiter(client *redis.Client, prefix string, perMinute int) RateLimiter {
	if client != nil {
		return NewRedisRateLimiter(client, prefix, perMinute)
	}
	return NewMemoryRateLimiter(perMinute)
}

// ==================== REDIS ====================

// RedisRateLimiter counts requests in fixed one-minute windows shared by all instances.
type RedisRateLimiter struct {
	client    *redis.Client
	prefix    string
	perMinute int
	now       func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, prefix string, perMinute int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:    client,
		prefix:    prefix,
		perMinute: perMinute,
		now:       time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().Unix() / 60
	redisKey := fmt.Sprintf("%sratelimit:%s:%d", l.prefix, key, window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("incr rate key: %w", err)
	}

	return incr.Val() <= int64(l.perMinute), nil
}

// ==================== MEMORY ====================

const maxMemoryLimiterKeys = 10000

// MemoryRateLimiter keeps one token bucket per key in process memory.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewMemoryRateLimiter(perMinute int) *MemoryRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &MemoryRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		// reset kalau map terlalu besar
		if len(l.limiters) >= maxMemoryLimiterKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}

	return limiter.Allow(), nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
