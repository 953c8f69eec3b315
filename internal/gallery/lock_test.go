package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLocalLocker(t *testing.T) {
	var l LocalLocker

	release, err := l.TryLock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.TryLock(context.Background()); !errors.Is(err, ErrCurationBusy) {
		t.Fatalf("expected ErrCurationBusy, got %v", err)
	}
	release()
	if _, err := l.TryLock(context.Background()); err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := NewRedisLocker(rdb, "artpulse:curation", time.Minute, nil)
	b := NewRedisLocker(rdb, "artpulse:curation", time.Minute, nil)

	release, err := a.TryLock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.TryLock(context.Background()); !errors.Is(err, ErrCurationBusy) {
		t.Fatalf("expected ErrCurationBusy from second process, got %v", err)
	}

	release()
	releaseB, err := b.TryLock(context.Background())
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	releaseB()
}

func TestRedisLockerExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLocker(rdb, "artpulse:curation", time.Second, nil)
	if _, err := l.TryLock(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)
	release, err := l.TryLock(context.Background())
	if err != nil {
		t.Fatalf("expected expired lock to be obtainable, got %v", err)
	}
	release()
}
