package keymutex

import "sync"

// KeyMutex provides mutual exclusion scoped to a string key. The punch engine
// holds the employee's lock across its find-open / validate / save sequence so
// two concurrent punches for the same employee are serialized while punches
// for different employees never contend.
//
// Locks are never evicted; the population is bounded by the number of
// employees, which is small for this system.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for key. It panics if Lock was not called first,
// matching sync.Mutex semantics.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()

	if !ok {
		panic("keymutex: unlock of unheld key " + key)
	}
	m.Unlock()
}
