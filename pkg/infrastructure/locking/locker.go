// Package locking serializes stock-affecting work per key across concurrently
// processed orders, either inside one process or across processes via Redis.
package locking

import (
	"context"
	"sync"
)

// Unlock releases a held lock
type Unlock func()

// Locker acquires an exclusive lock for a key, blocking until it is held or ctx ends
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// KeyedMutex is an in-process Locker with one mutex per key
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty in-process locker
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

var _ Locker = (*KeyedMutex)(nil)

// Lock acquires the key; entries are dropped once nobody holds or waits on them
func (k *KeyedMutex) Lock(ctx context.Context, key string) (Unlock, error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			k.release(key, entry)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}

// Size returns the number of keys currently held or awaited
func (k *KeyedMutex) Size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// NoopLocker never blocks; used when serialization is disabled
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (Unlock, error) {
	return func() {}, nil
}

// ProductKey is the lock key covering every supplier link of a product
func ProductKey(productID string) string {
	return "poengine:lock:product:" + productID
}
