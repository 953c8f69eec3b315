package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisValueField    = "value"
	redisRevisionField = "rev"
)

// RedisBackend stores each key as a hash {value, rev} under prefix:key.
type RedisBackend struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisBackend(rdb redis.UniversalClient, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (b *RedisBackend) redisKey(key string) string {
	if b.prefix == "" {
		return key
	}
	return b.prefix + ":" + key
}

func (b *RedisBackend) Get(ctx context.Context, key string) (Record, error) {
	vals, err := b.rdb.HMGet(ctx, b.redisKey(key), redisValueField, redisRevisionField).Result()
	if err != nil {
		return Record{}, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return decodeRedisRecord(vals)
}

func decodeRedisRecord(vals []interface{}) (Record, error) {
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return Record{}, nil
	}
	value, ok := vals[0].(string)
	if !ok {
		return Record{}, fmt.Errorf("%w: unexpected value type %T", ErrUnavailable, vals[0])
	}
	revRaw, ok := vals[1].(string)
	if !ok {
		return Record{}, fmt.Errorf("%w: unexpected revision type %T", ErrUnavailable, vals[1])
	}
	rev, err := strconv.ParseInt(revRaw, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad revision %q", ErrUnavailable, revRaw)
	}
	return Record{Value: []byte(value), Revision: rev}, nil
}

func (b *RedisBackend) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	rk := b.redisKey(key)
	var next int64

	err := b.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.HGet(ctx, rk, redisRevisionField).Int64()
		if errors.Is(err, redis.Nil) {
			cur = 0
		} else if err != nil {
			return err
		}

		if expected != AnyRevision && expected != cur {
			return ErrConflict
		}

		next = cur + 1
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, rk, redisValueField, value, redisRevisionField, next)
			return nil
		})
		return err
	}, rk)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return 0, ErrConflict
	default:
		return 0, fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}
}
