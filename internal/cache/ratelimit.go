package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	// ResetAt is when the bucket will be full again.
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes one token atomically. Time is in
// milliseconds; the bucket is stored as a hash of tokens and last refill.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1]) or burst
local ts = tonumber(data[2]) or now

tokens = math.min(burst, tokens + math.max(0, now - ts) * rate / 1000)

local allowed = 0
local retry_ms = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
else
	retry_ms = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', key, ttl)

local full_ms = math.ceil((burst - tokens) * 1000 / rate)
return {allowed, retry_ms, math.floor(tokens), full_ms}
`)

// CheckIPRateLimit consumes one token from the bucket of ip. A non-positive
// rate means unlimited. Redis failures are returned; callers decide whether
// to fail open.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	now := c.now()
	if ratePerSecond <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst), ResetAt: now}, nil
	}
	if burst < 1 {
		burst = 1
	}

	// Keys live until an idle bucket would have refilled completely.
	ttl := time.Duration(math.Ceil(float64(burst)/float64(ratePerSecond)*1000))*time.Millisecond + time.Second

	res, err := tokenBucketScript.Run(ctx, c.client,
		[]string{c.ipBucketKey(ip)},
		ratePerSecond, burst, now.UnixMilli(), ttl.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 4 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	return &RateLimitResult{
		Allowed:    res[0] == 1,
		RetryAfter: time.Duration(res[1]) * time.Millisecond,
		Remaining:  res[2],
		ResetAt:    now.Add(time.Duration(res[3]) * time.Millisecond),
	}, nil
}

// ipBucketKey derives the Redis key for ip. Raw addresses are never stored,
// and equivalent spellings of one address share a bucket.
func (c *Cache) ipBucketKey(ip string) string {
	return c.keyPrefix + "ratelimit:ip:" + hashIP(normalizeIP(ip))
}

func normalizeIP(ip string) string {
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.String()
	}
	return ip
}

// hashIP returns the first 8 bytes of SHA-256, hex encoded.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8])
}
