// Package keylock serializes work per key (a user's cart, a single order) inside one process.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex hands out one mutex per key. Entries are dropped once no goroutine
// holds or waits on them, so the map only grows with the number of keys in flight.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock blocks until the caller holds key and returns the matching unlock function.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.entries, key)
			}
			k.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
