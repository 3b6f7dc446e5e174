package jobs

import (
	"fmt"
	"sync"
)

// prLocks hands out one mutex per pull request so that two jobs never mutate
// the same record at once. An entry lives only while some job holds or waits
// for it.
type prLocks struct {
	mu    sync.Mutex
	prMux map[string]*prLock
}

type prLock struct {
	sync.Mutex
	refs int
}

// lock blocks until the pull request's mutex is held and returns its unlock func.
func (l *prLocks) lock(repository string, number int) func() {
	key := fmt.Sprintf("%s#%d", repository, number)

	l.mu.Lock()
	if l.prMux == nil {
		l.prMux = make(map[string]*prLock)
	}
	entry, ok := l.prMux[key]
	if !ok {
		entry = &prLock{}
		l.prMux[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.prMux, key)
		}
		l.mu.Unlock()
	}
}

// size reports how many pull requests currently have an entry.
func (l *prLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prMux)
}
