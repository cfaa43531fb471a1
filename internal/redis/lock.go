package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another process is left alone.
var releaseScript = redis.NewScript(1, `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a dispatch-pass lock shared by every process using the same Redis.
// The key is never extended; holders must finish within ttl.
type Lock struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
	key    string
	ttl    time.Duration
}

func NewLock(pool *redis.Pool, logger *zap.SugaredLogger, key string, ttl time.Duration) *Lock {
	return &Lock{
		pool:   pool,
		logger: logger,
		key:    key,
		ttl:    ttl,
	}
}

func (l *Lock) TryLock(ctx context.Context) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get redis conn: %w", err)
	}
	defer conn.Close()

	_, err = redis.String(conn.Do("SET", l.key, token, "NX", "PX", l.ttl.Milliseconds()))
	if errors.Is(err, redis.ErrNil) {
		return nil, model.ErrPassInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %v: %w", l.key, err)
	}

	return func() { l.release(token) }, nil
}

func (l *Lock) release(token string) {
	conn := l.pool.Get()
	defer conn.Close()

	if _, err := releaseScript.Do(conn, l.key, token); err != nil {
		l.logger.Errorw("failed to release dispatch lock", "key", l.key, "err", err)
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
