package services

import (
	"sync"

	"github.com/google/uuid"
)

// ClientLocks serializes plan mutations per client. Version assignment and
// activation both read-check-write against the same client's rows; holding
// the client's lock for the whole sequence keeps version numbers unique and
// the single-active invariant intact. Different clients never contend.
type ClientLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*clientLock
}

type clientLock struct {
	mu   sync.Mutex
	refs int
}

func NewClientLocks() *ClientLocks {
	return &ClientLocks{locks: map[uuid.UUID]*clientLock{}}
}

// Lock blocks until the per-client lock is held and returns the unlock
// function. Entries are reference counted and removed when idle so the map
// does not grow with the client population.
func (c *ClientLocks) Lock(clientID uuid.UUID) func() {
	c.mu.Lock()
	l, ok := c.locks[clientID]
	if !ok {
		l = &clientLock{}
		c.locks[clientID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, clientID)
		}
		c.mu.Unlock()
	}
}
