package jobs

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-warden/internal/core"
)

type countingJob struct {
	mu   sync.Mutex
	seen []int
}

func (j *countingJob) Run(_ context.Context, event *core.GitHubEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seen = append(j.seen, event.PRNumber)
	return nil
}

func TestDispatcher_RunsQueuedJobs(t *testing.T) {
	job := &countingJob{}
	d := NewDispatcher(job, 3, discardLogger())

	for i := 1; i <= 10; i++ {
		require.NoError(t, d.Dispatch(context.Background(), &core.GitHubEvent{PRNumber: i}))
	}
	d.Stop()

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, job.seen)
}

type blockingJob struct {
	release chan struct{}
}

func (j *blockingJob) Run(context.Context, *core.GitHubEvent) error {
	<-j.release
	return nil
}

func TestDispatcher_QueueFull(t *testing.T) {
	job := &blockingJob{release: make(chan struct{})}
	d := NewDispatcher(job, 1, discardLogger())

	var err error
	// one event is held by the worker, the rest fill the queue
	for i := 0; i <= queueSize+1 && err == nil; i++ {
		err = d.Dispatch(context.Background(), &core.GitHubEvent{PRNumber: i})
	}
	assert.ErrorIs(t, err, ErrQueueFull)

	close(job.release)
	d.Stop()
}
