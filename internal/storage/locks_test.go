package storage

import (
	"sync"
	"testing"
	"time"
)

func TestTileLocks_SerializesSameKey(t *testing.T) {
	locks := newTileLocks()

	var mu sync.Mutex
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("tile")
			defer unlock()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("expected at most 1 holder at a time, saw %d", maxActive)
	}
	if locks.held() != 0 {
		t.Errorf("expected lock table to be empty, got %d entries", locks.held())
	}
}

func TestTileLocks_IndependentKeys(t *testing.T) {
	locks := newTileLocks()

	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
}
