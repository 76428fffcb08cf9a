package middleware

import (
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/redis/go-redis/v9"
)

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimiter is a Redis token bucket keyed by caller. A nil client lets
// every request through.
type RateLimiter struct {
	rdb         *redis.Client
	capacity    int
	refillEvery time.Duration
	prefix      string
}

func NewRateLimiter(rdb *redis.Client, capacity int, refillEvery time.Duration, prefix string) *RateLimiter {
	return &RateLimiter{rdb: rdb, capacity: capacity, refillEvery: refillEvery, prefix: prefix}
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	if l == nil || l.rdb == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)
		ttl := int64(math.Ceil(float64(l.capacity)*l.refillEvery.Seconds())) + 1

		vals, err := tokenBucketScript.Run(r.Context(), l.rdb, []string{key},
			time.Now().UnixMilli(), l.capacity, l.refillEvery.Milliseconds(), ttl,
		).Int64Slice()
		if err != nil || len(vals) != 3 {
			// Fail open while Redis is unavailable.
			log.Printf("Rate limiter unavailable for %s: %v", key, err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(vals[1], 10))

		if vals[0] != 1 {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(vals[2])))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// key prefers the authenticated user and falls back to the client address.
func (l *RateLimiter) key(r *http.Request) string {
	if identity, ok := auth.FromContext(r.Context()); ok {
		return fmt.Sprintf("%s:user:%s:%s %s", l.prefix, identity.UserID, r.Method, r.URL.Path)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return fmt.Sprintf("%s:ip:%s:%s %s", l.prefix, host, r.Method, r.URL.Path)
}

func retryAfterSeconds(ms int64) int {
	secs := int(math.Ceil(float64(ms) / 1000.0))
	if secs < 1 {
		return 1
	}
	return secs
}
