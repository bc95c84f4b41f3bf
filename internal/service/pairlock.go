package service

import "sync"

// pairLock serializes writes per (teacher, scenario) pair. Entries are
// reference counted and removed once the last holder unlocks, so the map
// stays bounded by the number of in-flight submissions.
type pairLock struct {
	mu    sync.Mutex
	pairs map[pairKey]*pairEntry
}

type pairKey struct {
	teacherID  uint
	scenarioID uint
}

type pairEntry struct {
	mu   sync.Mutex
	refs int
}

func newPairLock() *pairLock {
	return &pairLock{pairs: make(map[pairKey]*pairEntry)}
}

// lock acquires the mutex for the pair and returns its release function.
func (l *pairLock) lock(teacherID, scenarioID uint) func() {
	key := pairKey{teacherID: teacherID, scenarioID: scenarioID}

	l.mu.Lock()
	entry, ok := l.pairs[key]
	if !ok {
		entry = &pairEntry{}
		l.pairs[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.pairs, key)
		}
		l.mu.Unlock()
	}
}
