// Package redis disponibiliza a implementação do storage baseada em Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

// fixedWindowScript guarda {count, reset} num hash. Só incrementa quando a
// requisição é aceita.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local count = tonumber(redis.call('HGET', key, 'count'))
local reset = tonumber(redis.call('HGET', key, 'reset'))

if (not count) or (not reset) or now > reset then
  reset = now + window
  redis.call('HSET', key, 'count', 1, 'reset', reset)
  redis.call('PEXPIRE', key, window)
  return {1, 1, reset}
end

if count >= max then
  return {0, count, reset}
end

count = redis.call('HINCRBY', key, 'count', 1)
return {1, count, reset}
`)

// slidingWindowScript guarda os timestamps num sorted set pontuado em ms.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local member = ARGV[4]
local cutoff = now - window

local count = redis.call('ZCOUNT', key, '(' .. cutoff, '+inf')
if count >= max then
  local oldest = redis.call('ZRANGEBYSCORE', key, '(' .. cutoff, '+inf', 'WITHSCORES', 'LIMIT', 0, 1)
  return {0, count, tonumber(oldest[2]) + window}
end

redis.call('ZREMRANGEBYSCORE', key, '-inf', cutoff)
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
return {1, count + 1, tonumber(oldest[2]) + window}
`)

type Storage struct {
	client *redis.Client
}

var _ ports.Storage = (*Storage)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Storage, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Storage{client: client}, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) FixedWindow(ctx context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error) {
	res, err := fixedWindowScript.Run(ctx, s.client, []string{key},
		rule.Requests, rule.Window.Milliseconds(), now.UnixMilli()).Int64Slice()
	if err != nil {
		return domain.WindowState{}, fmt.Errorf("fixed window script: %w", err)
	}
	return toWindowState(res)
}

func (s *Storage) SlidingWindow(ctx context.Context, key string, rule domain.RateLimitRule, now time.Time) (domain.WindowState, error) {
	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	res, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		rule.Requests, rule.Window.Milliseconds(), now.UnixMilli(), member).Int64Slice()
	if err != nil {
		return domain.WindowState{}, fmt.Errorf("sliding window script: %w", err)
	}
	return toWindowState(res)
}

func toWindowState(res []int64) (domain.WindowState, error) {
	if len(res) != 3 {
		return domain.WindowState{}, fmt.Errorf("unexpected script reply length %d", len(res))
	}
	return domain.WindowState{
		Allowed: res[0] == 1,
		Count:   int(res[1]),
		ResetAt: time.UnixMilli(res[2]),
	}, nil
}
