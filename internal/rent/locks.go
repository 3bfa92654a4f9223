package rent

import "sync"

// propertyLocks serializes mutating calls per property id so two concurrent
// bookings can never both observe an unbooked record, regardless of the
// backing database's isolation level.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[int64]*sync.Mutex)}
}

// acquire locks the mutex for the given property and returns its release
// function. Lock entries are never reclaimed; property ids are dense and
// never deleted.
func (l *propertyLocks) acquire(id int64) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
