package store

import "sync"

// recordLocks hands out one mutex per item id. Entries are dropped once no
// caller holds or waits on them.
type recordLocks struct {
	mu    sync.Mutex
	locks map[int64]*recordLock
}

type recordLock struct {
	sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[int64]*recordLock)}
}

// lock blocks until the caller owns id and returns the matching unlock func.
func (l *recordLocks) lock(id int64) func() {
	l.mu.Lock()
	rl, ok := l.locks[id]
	if !ok {
		rl = &recordLock{}
		l.locks[id] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.Lock()

	return func() {
		rl.Unlock()

		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// size returns the number of ids currently tracked.
func (l *recordLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
