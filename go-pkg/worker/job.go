package worker

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	maxAttempts = 3
	maxLogLines = 5000
)

// Job is one asynchronous unit of work. The job function receives a channel
// to expose its log to callers; a failing function is retried with a growing
// backoff until the attempt budget or the timeout runs out.
type Job struct {
	f func(chan<- string) error

	done chan struct{}

	logs  []string
	logMu sync.Mutex
}

func newJob(timeout time.Duration, f func(chan<- string) error) *Job {
	job := &Job{
		f:    f,
		done: make(chan struct{}),
	}
	go job.run(timeout)
	return job
}

// Done reports whether the job has finished, successfully or not.
func (j *Job) Done() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the job has finished.
func (j *Job) Wait() {
	<-j.done
}

func (j *Job) GetLog() string {
	j.logMu.Lock()
	defer j.logMu.Unlock()
	return strings.Join(j.logs, "")
}

func (j *Job) run(timeout time.Duration) {
	defer close(j.done)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logCh := make(chan string, 1000)
	var logWG sync.WaitGroup
	logWG.Add(1)
	go func() {
		defer logWG.Done()
		for line := range logCh {
			j.logMu.Lock()
			j.logs = append(j.logs, line)
			if len(j.logs) > maxLogLines {
				j.logs = j.logs[len(j.logs)-maxLogLines:]
			}
			j.logMu.Unlock()
		}
	}()
	defer logWG.Wait()
	defer close(logCh)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := j.f(logCh); err == nil {
			return
		}
		if attempt == maxAttempts-1 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt*attempt+1) * 10 * time.Second):
		}
	}
}
