package repository

import (
	"context"
	"strconv"
	"time"

	"madrasa/domain"

	"github.com/redis/go-redis/v9"
)

// redisRateLimitStore shares window counters across instances. All state
// carries a TTL, so Sweep is a no-op here.
type redisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(client *redis.Client) domain.RateLimitStore {
	return &redisRateLimitStore{client: client}
}

// hitScript applies one request against the fixed window atomically: first hit
// creates the window, hits at the cap do not increment the count but do bump
// the window's violation tally.
var hitScript = redis.NewScript(`
local key = KEYS[1]
local vkey = KEYS[2]
local max = tonumber(ARGV[1])
local window_ms = tonumber(ARGV[2])

local current = redis.call('GET', key)
if current == false then
	redis.call('SET', key, 1, 'PX', window_ms)
	return {1, 1, window_ms, 0}
end

local count = tonumber(current)
local ttl = redis.call('PTTL', key)
if ttl < 0 then
	ttl = window_ms
end

if count >= max then
	local v = redis.call('INCR', vkey)
	redis.call('PEXPIRE', vkey, ttl)
	return {count, 0, ttl, v}
end

count = redis.call('INCR', key)
local v = redis.call('GET', vkey)
if v == false then
	v = 0
end
return {count, 1, ttl, tonumber(v)}
`)

var refundScript = redis.NewScript(`
local key = KEYS[1]
local current = redis.call('GET', key)
if current ~= false and tonumber(current) > 0 then
	return redis.call('DECR', key)
end
return 0
`)

var violationScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local reset_ms = tonumber(ARGV[2])

local last = redis.call('HGET', key, 'last')
local count
if last == false or (now - tonumber(last)) > reset_ms then
	redis.call('HSET', key, 'count', 1, 'last', now)
	count = 1
else
	count = redis.call('HINCRBY', key, 'count', 1)
	redis.call('HSET', key, 'last', now)
end
redis.call('PEXPIRE', key, reset_ms)
return count
`)

func windowKey(key string) string     { return "rate:fw:" + key }
func windowViolKey(key string) string { return "rate:fwv:" + key }
func violationKey(id string) string   { return "rate:viol:" + id }

func (s *redisRateLimitStore) Hit(ctx context.Context, key string, max int, window time.Duration) (domain.WindowState, bool, error) {
	res, err := hitScript.Run(ctx, s.client,
		[]string{windowKey(key), windowViolKey(key)},
		max, window.Milliseconds()).Result()
	if err != nil {
		return domain.WindowState{}, false, err
	}

	vals := res.([]interface{})
	count := vals[0].(int64)
	allowed := vals[1].(int64) == 1
	ttlMs := vals[2].(int64)
	violations := vals[3].(int64)

	now := time.Now()
	return domain.WindowState{
		Count:       int(count),
		ResetTime:   now.Add(time.Duration(ttlMs) * time.Millisecond),
		LastRequest: now,
		Violations:  int(violations),
	}, allowed, nil
}

func (s *redisRateLimitStore) Refund(ctx context.Context, key string) error {
	return refundScript.Run(ctx, s.client, []string{windowKey(key)}).Err()
}

func (s *redisRateLimitStore) RecordViolation(ctx context.Context, identifier string, resetAfter time.Duration) (domain.ViolationState, error) {
	now := time.Now()
	count, err := violationScript.Run(ctx, s.client,
		[]string{violationKey(identifier)},
		now.UnixMilli(), resetAfter.Milliseconds()).Int64()
	if err != nil {
		return domain.ViolationState{}, err
	}
	return domain.ViolationState{Count: int(count), LastViolation: now}, nil
}

func (s *redisRateLimitStore) Violations(ctx context.Context, identifier string) (domain.ViolationState, error) {
	vals, err := s.client.HMGet(ctx, violationKey(identifier), "count", "last").Result()
	if err != nil {
		return domain.ViolationState{}, err
	}
	if vals[0] == nil || vals[1] == nil {
		return domain.ViolationState{}, nil
	}

	var state domain.ViolationState
	if str, ok := vals[0].(string); ok {
		if n, err := strconv.Atoi(str); err == nil {
			state.Count = n
		}
	}
	if str, ok := vals[1].(string); ok {
		if ms, err := strconv.ParseInt(str, 10, 64); err == nil {
			state.LastViolation = time.UnixMilli(ms)
		}
	}
	return state, nil
}

func (s *redisRateLimitStore) Sweep(context.Context) (int, error) {
	// Redis expires rate keys on its own.
	return 0, nil
}
