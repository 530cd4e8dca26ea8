// Package worker runs fire-and-forget jobs keyed by name, keeping the log of
// the latest job per key around for inspection.
package worker

import (
	"fmt"
	"sync"
	"time"
)

type Worker struct {
	jobs map[string]*Job
	mu   sync.Mutex
}

func New() *Worker {
	return &Worker{
		jobs: make(map[string]*Job),
	}
}

// CreateJob starts a new job under the given name. A still-running job with
// the same name refuses the new one; a finished one is replaced, its log
// discarded.
func (w *Worker) CreateJob(timeout time.Duration, name string, f func(chan<- string) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if job, ok := w.jobs[name]; ok && !job.Done() {
		return fmt.Errorf("job %s exists and is running", name)
	}
	w.jobs[name] = newJob(timeout, f)
	return nil
}

// GetJob returns the latest job created under the name, running or not.
func (w *Worker) GetJob(name string) *Job {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.jobs[name]
}
