package locking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"prefacturation_service/internal/usecase/interfaces"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLocker(t *testing.T, ttl, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, ttl, wait), mr
}

// exerciseMutualExclusion runs a read-modify-write from several goroutines.
func exerciseMutualExclusion(t *testing.T, locker interfaces.ILocker) {
	t.Helper()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "prefacturation:pf-1")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	if counter != 8 {
		t.Fatalf("expected 8 serialized increments, got %d", counter)
	}
}

func TestMemoryLocker(t *testing.T) {
	t.Run("serializes a key", func(t *testing.T) {
		exerciseMutualExclusion(t, NewMemoryLocker(5*time.Second))
	})

	t.Run("times out while held", func(t *testing.T) {
		locker := NewMemoryLocker(20 * time.Millisecond)
		unlock, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("lock: %v", err)
		}
		defer unlock()

		if _, err := locker.Lock(context.Background(), "k"); !errors.Is(err, ErrLockTimeout) {
			t.Fatalf("expected ErrLockTimeout, got %v", err)
		}
		if other, err := locker.Lock(context.Background(), "other"); err != nil {
			t.Fatalf("independent key should lock, got %v", err)
		} else {
			other()
		}
	})

	t.Run("unlock is idempotent and frees the key", func(t *testing.T) {
		locker := NewMemoryLocker(time.Second)
		unlock, _ := locker.Lock(context.Background(), "k")
		unlock()
		unlock()
		if len(locker.keys) != 0 {
			t.Fatalf("expected no tracked keys, got %d", len(locker.keys))
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		locker := NewMemoryLocker(time.Second)
		unlock, _ := locker.Lock(context.Background(), "k")
		defer unlock()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := locker.Lock(ctx, "k"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestRedisLocker(t *testing.T) {
	t.Run("serializes a key", func(t *testing.T) {
		locker, _ := newRedisLocker(t, 5*time.Second, 5*time.Second)
		exerciseMutualExclusion(t, locker)
	})

	t.Run("times out while held", func(t *testing.T) {
		locker, _ := newRedisLocker(t, 5*time.Second, 100*time.Millisecond)
		unlock, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("lock: %v", err)
		}
		defer unlock()

		if _, err := locker.Lock(context.Background(), "k"); !errors.Is(err, ErrLockTimeout) {
			t.Fatalf("expected ErrLockTimeout, got %v", err)
		}
	})

	t.Run("release keeps a lock taken over after expiry", func(t *testing.T) {
		locker, mr := newRedisLocker(t, time.Second, 100*time.Millisecond)
		unlock, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("lock: %v", err)
		}
		mr.FastForward(2 * time.Second)

		second, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("expected lock after expiry, got %v", err)
		}
		unlock()
		if !mr.Exists("lock:k") {
			t.Fatalf("stale release must not delete the new holder's key")
		}
		second()
		if mr.Exists("lock:k") {
			t.Fatalf("expected key released")
		}
	})
}
