package keylock_test

import (
	"sync"
	"testing"

	"storefront/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := keylock.New()
	counter := 0

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("order-1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, locks.Len())
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	locks := keylock.New()

	unlockA := locks.Lock("user-a")
	unlockB := locks.Lock("user-b")
	assert.Equal(t, 2, locks.Len())

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.Len())
}

func TestKeyedMutex_UnlockIsIdempotent(t *testing.T) {
	locks := keylock.New()

	unlock := locks.Lock("k")
	unlock()
	unlock()

	relock := locks.Lock("k")
	relock()
	assert.Equal(t, 0, locks.Len())
}
