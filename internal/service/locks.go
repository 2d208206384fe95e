package service

import "sync"

// keyedMutex serializes work per string key. Booking locks on
// "schedule/seat" so two students racing for the same seat queue up, while
// bookings for different seats proceed in parallel; schedule writes lock on
// the hall ID. Mutexes are kept for the process lifetime, which is bounded
// by seats times screenings and stays small for a campus deployment.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
