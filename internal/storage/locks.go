package storage

import "sync"

// tileLocks hands out one mutex per key and drops it once nobody holds or
// waits for it.
type tileLocks struct {
	mu    sync.Mutex
	locks map[string]*tileLock
}

type tileLock struct {
	mu   sync.Mutex
	refs int
}

func newTileLocks() *tileLocks {
	return &tileLocks{locks: make(map[string]*tileLock)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (t *tileLocks) Lock(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &tileLock{}
		t.locks[key] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		t.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.locks, key)
		}
		t.mu.Unlock()
	}
}

// held returns the number of keys currently tracked.
func (t *tileLocks) held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
