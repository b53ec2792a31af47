package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestClientLocksSerializePerClient(t *testing.T) {
	locks := NewClientLocks()
	clientID := uuid.New()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock(clientID)
			defer unlock()
			// non-atomic increment; only safe if the lock serializes
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter: want %d, got %d", workers, counter)
	}
}

func TestClientLocksReleaseIdleEntries(t *testing.T) {
	locks := NewClientLocks()
	a, b := uuid.New(), uuid.New()

	unlockA := locks.Lock(a)
	unlockB := locks.Lock(b)
	unlockA()
	unlockB()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Fatalf("idle entries must be removed, %d left", len(locks.locks))
	}
}

func TestClientLocksIndependentClients(t *testing.T) {
	locks := NewClientLocks()
	a, b := uuid.New(), uuid.New()

	unlockA := locks.Lock(a)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(b)
		unlockB()
		close(done)
	}()
	<-done // must not deadlock while a is held
}
