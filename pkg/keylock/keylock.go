package keylock

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

type entry struct {
	mutex sync.Mutex

	// guard protects refs and dead.
	guard sync.Mutex
	refs  int
	dead  bool
}

// Locker hands out one mutex per key. It serializes work on the same
// entity inside a process; the database row lock covers other processes.
// A key's entry lives only while someone holds or waits for it.
type Locker struct {
	entries *xsync.MapOf[string, *entry]
}

func New() *Locker {
	return &Locker{entries: xsync.NewMapOf[*entry]()}
}

// Lock blocks until the key is free and returns the unlock function.
func (l *Locker) Lock(key string) func() {
	for {
		e, _ := l.entries.LoadOrCompute(key, func() *entry { return &entry{} })

		e.guard.Lock()
		if e.dead {
			// Released and removed after we loaded it, try the fresh one.
			e.guard.Unlock()
			continue
		}
		e.refs++
		e.guard.Unlock()

		e.mutex.Lock()
		return func() { l.release(key, e) }
	}
}

func (l *Locker) release(key string, e *entry) {
	e.mutex.Unlock()

	e.guard.Lock()
	defer e.guard.Unlock()

	e.refs--
	if e.refs == 0 {
		e.dead = true
		l.entries.Delete(key)
	}
}

// Len is the number of keys currently held or waited on.
func (l *Locker) Len() int {
	return l.entries.Size()
}
