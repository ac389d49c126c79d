package glbcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Redis stores blobs in a Redis server with an expiry.
type Redis struct {
	pool *redis.Pool
	ttl  time.Duration
}

// NewRedis returns a cache backed by a connection pool to addr.
func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		pool: &redis.Pool{
			MaxIdle:     4,
			IdleTimeout: time.Minute,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", addr,
					redis.DialConnectTimeout(2*time.Second),
					redis.DialReadTimeout(2*time.Second),
					redis.DialWriteTimeout(2*time.Second))
			},
		},
		ttl: ttl,
	}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("redis connect: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, data []byte) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	defer conn.Close()

	if r.ttl > 0 {
		_, err = conn.Do("SET", key, data, "PX", expiryMillis(r.ttl))
	} else {
		_, err = conn.Do("SET", key, data)
	}
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// expiryMillis rounds a positive ttl up to whole milliseconds, never below 1.
func expiryMillis(ttl time.Duration) int64 {
	ms := int64((ttl + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

func (r *Redis) Close() error {
	return r.pool.Close()
}
