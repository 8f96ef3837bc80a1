package keymutex

import (
	"sync"
	"testing"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			km.Lock("emp-1")
			counter++
			km.Unlock("emp-1")
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Errorf("counter = %d, want %d", counter, goroutines)
	}
}

func TestDifferentKeysDoNotContend(t *testing.T) {
	km := New()

	km.Lock("emp-1")
	done := make(chan struct{})
	go func() {
		km.Lock("emp-2")
		km.Unlock("emp-2")
		close(done)
	}()
	<-done
	km.Unlock("emp-1")
}

func TestUnlockUnheldKeyPanics(t *testing.T) {
	km := New()

	defer func() {
		if recover() == nil {
			t.Error("Unlock of unheld key did not panic")
		}
	}()
	km.Unlock("never-locked")
}
