package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Locker guards the curation run. TryLock returns ErrCurationBusy when the
// lock is already held.
type Locker interface {
	TryLock(ctx context.Context) (release func(), err error)
}

// LocalLocker is a busy flag for a single process.
type LocalLocker struct {
	busy atomic.Bool
}

func (l *LocalLocker) TryLock(context.Context) (func(), error) {
	if !l.busy.CompareAndSwap(false, true) {
		return nil, ErrCurationBusy
	}
	return func() { l.busy.Store(false) }, nil
}

// RedisLocker shares the busy flag between processes using one store.
type RedisLocker struct {
	client *redislock.Client
	key    string
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedisLocker(rdb redis.Scripter, key string, ttl time.Duration, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{client: redislock.New(rdb), key: key, ttl: ttl, log: logger}
}

func (l *RedisLocker) TryLock(ctx context.Context) (func(), error) {
	lock, err := l.client.Obtain(ctx, l.key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrCurationBusy
	}
	if err != nil {
		return nil, fmt.Errorf("obtain curation lock: %w", err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn("failed to release curation lock", "key", l.key, "error", err)
		}
	}, nil
}
