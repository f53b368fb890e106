package jobexecutor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/operaton/operaton-sub059/internal/x/containerx/pqueue"
	"github.com/operaton/operaton-sub059/internal/x/syncx"
	"github.com/operaton/operaton-sub059/semaphore"
)

// DefaultCoreWorkers is the default number of workers that are kept running
// even when there is no work.
const DefaultCoreWorkers = 3

// DefaultMaxWorkers is the default maximum number of workers.
const DefaultMaxWorkers = 10

// DefaultQueueSize is the default number of units that may wait for a worker.
const DefaultQueueSize = 3

// DefaultKeepAlive is the default time that a worker beyond the core workers
// waits for more work before stopping.
const DefaultKeepAlive = 10 * time.Second

// UnitHandler executes units of work.
type UnitHandler interface {
	Handle(ctx context.Context, u *Unit)
}

// UnitHandlerFunc is an adaptor that allows a function to be used as a
// UnitHandler.
type UnitHandlerFunc func(ctx context.Context, u *Unit)

// Handle calls fn(ctx, u).
func (fn UnitHandlerFunc) Handle(ctx context.Context, u *Unit) {
	fn(ctx, u)
}

// Pool is a bounded pool of workers that execute units of work.
//
// Submitted units wait on a priority queue until a worker is available. The
// units of a single process instance are never executed concurrently.
type Pool struct {
	// Handler executes each unit.
	Handler UnitHandler

	// CoreWorkers is the number of workers that are kept running while the
	// pool is running. If it is non-positive, DefaultCoreWorkers is used.
	CoreWorkers int

	// MaxWorkers is the maximum number of workers. If it is non-positive,
	// DefaultMaxWorkers is used.
	MaxWorkers int

	// QueueSize is the number of units that may wait for a worker. If it is
	// negative, DefaultQueueSize is used.
	QueueSize int

	// KeepAlive is the time that a worker beyond the core workers waits for
	// more work before stopping. If it is non-positive, DefaultKeepAlive is
	// used.
	KeepAlive time.Duration

	// Metrics records the occupancy of the pool. It may be nil.
	Metrics *Metrics

	// Logger is the target for log messages from the pool.
	// If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger

	m         sync.Mutex
	ctx       context.Context
	queue     pqueue.Queue
	sem       semaphore.Semaphore
	wake      chan struct{}
	instances syncx.MutexNamespace
	workers   int
	idle      int
	busy      int
	wg        sync.WaitGroup
}

// Run starts the core workers and blocks until ctx is canceled.
//
// Units that are still waiting on the queue when ctx is canceled are
// discarded; their locks expire and they are acquired again later.
func (p *Pool) Run(ctx context.Context) error {
	p.m.Lock()

	if p.ctx != nil {
		p.m.Unlock()
		return errors.New("the worker pool is already running")
	}

	p.ctx = ctx
	p.sem = semaphore.New(p.maxWorkers())
	p.wake = make(chan struct{}, p.maxWorkers())

	for i := 0; i < p.coreWorkers(); i++ {
		p.sem.TryAcquire()
		p.start(true)
	}

	p.m.Unlock()

	logging.Debug(
		p.Logger,
		"worker pool started with %d core worker(s), up to %d worker(s) and a queue of %d unit(s)",
		p.coreWorkers(),
		p.maxWorkers(),
		p.queueSize(),
	)

	<-ctx.Done()
	p.wg.Wait()

	p.m.Lock()
	p.queue = pqueue.Queue{}
	p.measure()
	p.m.Unlock()

	return ctx.Err()
}

// Capacity returns the number of units that the pool would currently accept.
func (p *Pool) Capacity() int {
	p.m.Lock()
	defer p.m.Unlock()

	if p.ctx == nil || p.ctx.Err() != nil {
		return 0
	}

	return p.capacity()
}

// Submit adds a unit to the pool.
//
// It returns false if the pool is saturated or not running, in which case the
// caller remains responsible for u.
func (p *Pool) Submit(u *Unit) bool {
	p.m.Lock()
	defer p.m.Unlock()

	if p.ctx == nil || p.ctx.Err() != nil || p.capacity() <= 0 {
		return false
	}

	p.queue.Push(u)

	if p.idle > 0 {
		// Claim an idle worker. The channel has room for every worker so
		// this never blocks.
		p.idle--
		p.wake <- struct{}{}
	} else if p.sem.TryAcquire() {
		p.start(false)
	}

	p.measure()

	return true
}

// capacity returns the number of units the pool would accept. p.m must be
// held.
func (p *Pool) capacity() int {
	n := p.queueSize() + p.maxWorkers() - p.busy - p.queue.Len()
	if n < 0 {
		return 0
	}
	return n
}

// start starts a new worker. A slot in p.sem must already be held on its
// behalf, and p.m must be held.
func (p *Pool) start(core bool) {
	p.workers++
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer p.sem.Release()

		p.work(core)

		p.m.Lock()
		p.workers--
		p.measure()
		p.m.Unlock()
	}()
}

// work executes units from the queue until ctx is canceled or, for workers
// beyond the core workers, until it has been idle for the keep-alive period.
func (p *Pool) work(core bool) {
	for {
		p.m.Lock()

		if e, ok := p.queue.Pop(); ok {
			p.busy++
			p.measure()
			p.m.Unlock()

			p.handle(e.(*Unit))

			p.m.Lock()
			p.busy--
			p.measure()
			p.m.Unlock()

			continue
		}

		p.idle++
		p.m.Unlock()

		if !p.wait(core) {
			return
		}
	}
}

// wait blocks until the worker is claimed by Submit(). It returns false if the
// worker should stop.
func (p *Pool) wait(core bool) bool {
	var expired <-chan time.Time

	if !core {
		t := time.NewTimer(p.keepAlive())
		defer t.Stop()
		expired = t.C
	}

	select {
	case <-p.ctx.Done():
		return false

	case <-p.wake:
		return true

	case <-expired:
		p.m.Lock()
		defer p.m.Unlock()

		// Submit() may have claimed an idle worker after the timer fired.
		select {
		case <-p.wake:
			return true
		default:
			p.idle--
			return false
		}
	}
}

// handle executes u once no other unit of the same process instance is being
// executed by this pool.
func (p *Pool) handle(u *Unit) {
	unlock, err := p.instances.Lock(p.ctx, u.ProcessInstanceID)
	if err != nil {
		return
	}
	defer unlock()

	p.Handler.Handle(p.ctx, u)
}

// measure updates the pool metrics. p.m must be held.
func (p *Pool) measure() {
	p.Metrics.pool(p.queue.Len(), p.busy, p.workers)
}

func (p *Pool) coreWorkers() int {
	n := p.CoreWorkers
	if n <= 0 {
		n = DefaultCoreWorkers
	}
	if m := p.maxWorkers(); n > m {
		n = m
	}
	return n
}

func (p *Pool) maxWorkers() int {
	if p.MaxWorkers > 0 {
		return p.MaxWorkers
	}
	return DefaultMaxWorkers
}

func (p *Pool) queueSize() int {
	if p.QueueSize >= 0 {
		return p.QueueSize
	}
	return DefaultQueueSize
}

func (p *Pool) keepAlive() time.Duration {
	if p.KeepAlive > 0 {
		return p.KeepAlive
	}
	return DefaultKeepAlive
}
