package locking

import (
	"context"
	"errors"
	"sync"
	"time"

	"prefacturation_service/internal/usecase/interfaces"
)

// ErrLockTimeout is returned when the key stayed held for the whole wait budget.
var ErrLockTimeout = errors.New("lock wait timeout")

type keyLock struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker is a keyed mutex for a single API instance.
type MemoryLocker struct {
	mu   sync.Mutex
	keys map[string]*keyLock
	wait time.Duration
}

var _ interfaces.ILocker = (*MemoryLocker)(nil)

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{keys: make(map[string]*keyLock), wait: wait}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	kl := l.acquireRef(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, kl)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseRef(key, kl)
		return nil, ErrLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.releaseRef(key, kl)
		})
	}, nil
}

func (l *MemoryLocker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.keys[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.keys[key] = kl
	}
	kl.refs++
	return kl
}

func (l *MemoryLocker) releaseRef(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.keys, key)
	}
}
