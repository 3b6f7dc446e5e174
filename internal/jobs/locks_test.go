package jobs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPRLocks_ReleasesEntries(t *testing.T) {
	var l prLocks

	unlock := l.lock("aergonaut/testrepo", 42)
	assert.Equal(t, 1, l.size())
	unlock()
	assert.Zero(t, l.size())

	var wg sync.WaitGroup
	counter := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer l.lock("aergonaut/testrepo", 42)()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, l.size(), "entries are dropped once no job holds them")
}

func TestPRLocks_DistinctPullRequests(t *testing.T) {
	var l prLocks

	first := l.lock("aergonaut/testrepo", 42)
	second := l.lock("aergonaut/testrepo", 43)
	assert.Equal(t, 2, l.size())

	first()
	second()
	assert.Zero(t, l.size())
}
