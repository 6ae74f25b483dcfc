package staffing

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex is a registry of per-entity exclusion flags created on demand
// and reclaimed as soon as the holder releases. Acquisition never blocks:
// a transfer either enters validation immediately or observes that one is
// already in flight for the same employee.
type keyedMutex struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{held: make(map[uuid.UUID]struct{})}
}

// TryLock acquires the exclusion for key. Returns false when another
// holder has it.
func (k *keyedMutex) TryLock(key uuid.UUID) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, taken := k.held[key]; taken {
		return false
	}
	k.held[key] = struct{}{}
	return true
}

// Unlock releases the exclusion for key and reclaims its registry entry.
func (k *keyedMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
}

// Len reports the number of exclusions currently held.
func (k *keyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.held)
}
