package redis

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// NewPool returns a small pool for lock traffic to the server at addr.
// Idle connections are pinged before reuse.
func NewPool(logger *zap.SugaredLogger, addr string) *redis.Pool {
	pool := &redis.Pool{
		MaxIdle:     2,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, idleSince time.Time) error {
			if time.Since(idleSince) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	closer.Bind(func() {
		if err := pool.Close(); err != nil {
			logger.Errorw("Failed closing redis pool", "err", err)
		}
	})

	return pool
}
