// Package semaphore limits the number of job executor workers that may run
// at the same time.
package semaphore

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Semaphore limits the number of workers that can run concurrently.
//
// The zero value imposes no limit.
type Semaphore struct {
	n   int
	sem *semaphore.Weighted
}

// New returns a semaphore that allows n workers to run concurrently.
func New(n int) Semaphore {
	return Semaphore{
		n,
		semaphore.NewWeighted(int64(n)),
	}
}

// Limit returns the number of workers that can run concurrently.
//
// It returns 0 if there is no limit.
func (s *Semaphore) Limit() int {
	if s.sem == nil {
		return 0
	}

	return s.n
}

// Acquire blocks until it is ok for the caller to start a worker, or until
// ctx is canceled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s.sem == nil {
		return nil
	}

	return s.sem.Acquire(ctx, 1)
}

// TryAcquire reserves a worker slot without blocking.
//
// It returns false if every slot is in use.
func (s *Semaphore) TryAcquire() bool {
	if s.sem == nil {
		return true
	}

	return s.sem.TryAcquire(1)
}

// Release signals that a worker has stopped.
func (s *Semaphore) Release() {
	if s.sem != nil {
		s.sem.Release(1)
	}
}
