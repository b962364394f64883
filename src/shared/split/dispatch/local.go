package dispatch

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/errors/mark"
	"github.com/veedubyou/stem-splitter/src/shared/split/separation"
	"golang.org/x/sync/semaphore"
)

var _ Dispatcher = &LocalDispatcher{}

// LocalDispatcher runs each job on its own goroutine, at most maxConcurrentJobs at a time.
// A full pool rejects the job instead of queueing it.
func NewLocalDispatcher(runner separation.Runner, maxConcurrentJobs int64) *LocalDispatcher {
	if maxConcurrentJobs < 1 {
		maxConcurrentJobs = 1
	}

	return &LocalDispatcher{
		runner: runner,
		slots:  semaphore.NewWeighted(maxConcurrentJobs),
	}
}

type LocalDispatcher struct {
	runner  separation.Runner
	slots   *semaphore.Weighted
	running sync.WaitGroup

	lock    sync.Mutex
	stopped bool
}

func (l *LocalDispatcher) Dispatch(_ context.Context, job jobentity.Job) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.stopped {
		return mark.Message(ServerBusyMark, "The server is shutting down")
	}

	if !l.slots.TryAcquire(1) {
		return mark.Message(ServerBusyMark, "All separation slots are taken")
	}

	l.running.Add(1)
	go func() {
		defer l.running.Done()
		defer l.slots.Release(1)

		// the job outlives the request that submitted it
		status := l.runner.Run(context.Background(), job)
		log.WithFields(log.Fields{
			"job_id": job.ID,
			"status": status,
		}).Info("Separation job finished")
	}()

	return nil
}

// Wait stops accepting jobs, then blocks until the running ones finish
func (l *LocalDispatcher) Wait() {
	l.lock.Lock()
	l.stopped = true
	l.lock.Unlock()

	l.running.Wait()
}
