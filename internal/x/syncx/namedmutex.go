// Package syncx contains synchronization primitives used by the job executor.
package syncx

import (
	"context"
	"sync"
	"sync/atomic"
)

// UnlockFunc is a function used to unlock a previously locked mutex.
type UnlockFunc func()

// MutexNamespace is a set of context-aware mutexes identified by name, such as
// one mutex per process instance.
//
// Mutexes are created on demand and discarded once nothing holds or awaits
// them. The zero value is ready to use.
type MutexNamespace struct {
	m       sync.Mutex
	mutexes map[string]*namedMutex
}

type namedMutex struct {
	// sem is a semaphore of size 1. Sending locks the mutex, receiving
	// unlocks it.
	sem chan struct{}

	// refs counts the callers that hold the mutex or are waiting for it. It
	// is only incremented while MutexNamespace.m is held.
	refs int64
}

// Lock acquires the mutex with the given name.
//
// It blocks until the mutex is available or ctx is canceled. The returned
// function unlocks the mutex, it is safe to call more than once.
func (ns *MutexNamespace) Lock(ctx context.Context, name string) (UnlockFunc, error) {
	m := ns.acquire(name)

	select {
	case m.sem <- struct{}{}:
		return ns.unlocker(name, m), nil
	case <-ctx.Done():
		ns.release(name, m)
		return nil, ctx.Err()
	}
}

// TryLock acquires the mutex with the given name if it is not already held.
func (ns *MutexNamespace) TryLock(name string) (UnlockFunc, bool) {
	m := ns.acquire(name)

	select {
	case m.sem <- struct{}{}:
		return ns.unlocker(name, m), true
	default:
		ns.release(name, m)
		return nil, false
	}
}

func (ns *MutexNamespace) unlocker(name string, m *namedMutex) UnlockFunc {
	var once sync.Once

	return func() {
		once.Do(func() {
			<-m.sem
			ns.release(name, m)
		})
	}
}

// acquire returns the mutex with the given name and adds a reference to it.
func (ns *MutexNamespace) acquire(name string) *namedMutex {
	ns.m.Lock()
	defer ns.m.Unlock()

	if m, ok := ns.mutexes[name]; ok {
		atomic.AddInt64(&m.refs, 1)
		return m
	}

	if ns.mutexes == nil {
		ns.mutexes = map[string]*namedMutex{}
	}

	m := &namedMutex{
		sem:  make(chan struct{}, 1),
		refs: 1,
	}
	ns.mutexes[name] = m

	return m
}

// release drops a reference to m, discarding it if it was the last one.
func (ns *MutexNamespace) release(name string, m *namedMutex) {
	if atomic.AddInt64(&m.refs, -1) > 0 {
		return
	}

	ns.m.Lock()
	defer ns.m.Unlock()

	// A concurrent acquire() may have added a reference between the decrement
	// and obtaining ns.m.
	if atomic.LoadInt64(&m.refs) == 0 && ns.mutexes[name] == m {
		delete(ns.mutexes, name)
	}
}
