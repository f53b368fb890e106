package operaton

import (
	"reflect"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/dogmatiq/linger"
	"github.com/dogmatiq/linger/backoff"
	"github.com/dogmatiq/marshalkit"
	"github.com/dogmatiq/marshalkit/codec"
	"github.com/dogmatiq/marshalkit/codec/json"
	"github.com/google/uuid"
	"github.com/operaton/operaton-sub059/command"
	"github.com/operaton/operaton-sub059/jobexecutor"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/persistence/boltpersistence"
	"github.com/operaton/operaton-sub059/retry"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DefaultPersistenceProvider is the default persistence provider.
	//
	// It is overridden by the WithPersistence() option.
	DefaultPersistenceProvider persistence.Provider = &boltpersistence.FileProvider{
		Path: "/var/run/pvm.boltdb",
	}

	// DefaultClusterKey is the default key that identifies the data shared by
	// the nodes of an engine cluster.
	//
	// It is overridden by the WithClusterKey() option.
	DefaultClusterKey = "pvm"

	// DefaultPollInterval is the default interval at which the job executor
	// queries for due jobs when it is not busy.
	//
	// It is overridden by the WithPollInterval() option.
	DefaultPollInterval = jobexecutor.DefaultPollInterval

	// DefaultMaxJobsPerAcquisition is the default maximum number of jobs that
	// the job executor acquires at once.
	//
	// It is overridden by the WithMaxJobsPerAcquisition() option.
	DefaultMaxJobsPerAcquisition = jobexecutor.DefaultMaxJobsPerAcquisition

	// DefaultCoreWorkers is the default number of job executor workers that
	// are kept running while idle.
	//
	// It is overridden by the WithWorkerPool() option.
	DefaultCoreWorkers = jobexecutor.DefaultCoreWorkers

	// DefaultMaxWorkers is the default maximum number of job executor workers.
	//
	// It is overridden by the WithWorkerPool() option.
	DefaultMaxWorkers = jobexecutor.DefaultMaxWorkers

	// DefaultQueueSize is the default number of acquired job units that may
	// wait for a worker.
	//
	// It is overridden by the WithQueueSize() option.
	DefaultQueueSize = jobexecutor.DefaultQueueSize

	// DefaultLockDuration is the default duration for which acquired jobs are
	// locked.
	//
	// It is overridden by the WithLockDuration() option.
	DefaultLockDuration = jobexecutor.DefaultLockDuration

	// DefaultMaxRetries is the default number of attempts given to each job.
	//
	// It is overridden by the WithMaxRetries() option.
	DefaultMaxRetries = command.DefaultJobRetries

	// DefaultRetryPolicy is the default policy that determines when a failed
	// job is next due.
	//
	// It is overridden by the WithRetryPolicy() option.
	DefaultRetryPolicy = retry.DefaultPolicy

	// DefaultConflictRetries is the default number of times a job, or an
	// internal command, is retried after an optimistic locking failure.
	//
	// It is overridden by the WithConflictRetries() option.
	DefaultConflictRetries uint64 = command.DefaultConflictRetries

	// DefaultAcquisitionBackoff is the default strategy used to delay job
	// acquisition after the data store fails.
	DefaultAcquisitionBackoff backoff.Strategy = backoff.WithTransforms(
		backoff.Exponential(100*time.Millisecond),
		linger.FullJitter,
		linger.Limiter(0, 30*time.Second),
	)

	// DefaultLogger is the default target for log messages produced by the
	// engine.
	//
	// It is overridden by the WithLogger() option.
	DefaultLogger = logging.DefaultLogger
)

// EngineOption configures the behavior of an engine.
type EngineOption func(*engineOptions)

// WithPersistence returns an engine option that sets the persistence provider
// used to store and retrieve process state.
//
// If this option is omitted or p is nil, DefaultPersistenceProvider is used.
func WithPersistence(p persistence.Provider) EngineOption {
	return func(opts *engineOptions) {
		opts.PersistenceProvider = p
	}
}

// WithClusterKey returns an engine option that sets the key that identifies
// the data shared by the nodes of an engine cluster.
//
// If this option is omitted or k is empty, DefaultClusterKey is used.
func WithClusterKey(k string) EngineOption {
	return func(opts *engineOptions) {
		opts.ClusterKey = k
	}
}

// WithJobExecutor returns an engine option that enables or disables the job
// executor.
//
// If it is disabled, Run() does not execute jobs. Jobs can still be executed
// by calling Engine.ExecuteJob(). The job executor is enabled by default.
func WithJobExecutor(enabled bool) EngineOption {
	return func(opts *engineOptions) {
		opts.JobExecutorDisabled = !enabled
	}
}

// WithPollInterval returns an engine option that sets the interval at which
// the job executor queries for due jobs when it is not busy.
//
// If this option is omitted or d is zero, DefaultPollInterval is used.
func WithPollInterval(d time.Duration) EngineOption {
	if d < 0 {
		panic("duration must not be negative")
	}

	return func(opts *engineOptions) {
		opts.PollInterval = d
	}
}

// WithMaxJobsPerAcquisition returns an engine option that sets the maximum
// number of jobs the job executor acquires at once.
//
// If this option is omitted or n is non-positive,
// DefaultMaxJobsPerAcquisition is used.
func WithMaxJobsPerAcquisition(n int) EngineOption {
	return func(opts *engineOptions) {
		opts.MaxJobsPerAcquisition = n
	}
}

// WithWorkerPool returns an engine option that sets the size of the job
// executor's worker pool.
//
// core workers are kept running while the pool is idle. Up to max workers run
// while the pool is busy. If this option is omitted, DefaultCoreWorkers and
// DefaultMaxWorkers are used.
func WithWorkerPool(core, max int) EngineOption {
	if core < 0 || max <= 0 || core > max {
		panic("worker counts must satisfy 0 <= core <= max and max > 0")
	}

	return func(opts *engineOptions) {
		opts.CoreWorkers = core
		opts.MaxWorkers = max
	}
}

// WithQueueSize returns an engine option that sets the number of acquired job
// units that may wait for a worker.
//
// If this option is omitted, DefaultQueueSize is used.
func WithQueueSize(n int) EngineOption {
	if n < 0 {
		panic("queue size must not be negative")
	}

	return func(opts *engineOptions) {
		opts.QueueSize = &n
	}
}

// WithLockDuration returns an engine option that sets the duration for which
// acquired jobs are locked.
//
// A job whose lock expires before it is executed may be acquired by another
// node. If this option is omitted or d is zero, DefaultLockDuration is used.
func WithLockDuration(d time.Duration) EngineOption {
	if d < 0 {
		panic("duration must not be negative")
	}

	return func(opts *engineOptions) {
		opts.LockDuration = d
	}
}

// WithMaxRetries returns an engine option that sets the number of attempts
// given to each new job.
//
// If this option is omitted or n is non-positive, DefaultMaxRetries is used.
func WithMaxRetries(n int) EngineOption {
	return func(opts *engineOptions) {
		opts.MaxRetries = n
	}
}

// WithRetryPolicy returns an engine option that sets the policy that
// determines when a failed job is next due.
//
// If this option is omitted or p is nil, DefaultRetryPolicy is used.
func WithRetryPolicy(p retry.Policy) EngineOption {
	return func(opts *engineOptions) {
		opts.RetryPolicy = p
	}
}

// WithConflictRetries returns an engine option that sets the number of times
// a job is retried immediately after an optimistic locking failure, before it
// is treated as a failed attempt.
//
// If this option is omitted, DefaultConflictRetries is used.
func WithConflictRetries(n uint64) EngineOption {
	return func(opts *engineOptions) {
		opts.ConflictRetries = &n
	}
}

// WithNodeID returns an engine option that sets the ID that this engine uses
// as the owner of the jobs it locks.
//
// Each node in a cluster must have a distinct ID. If this option is omitted or
// id is empty, a random ID is used.
func WithNodeID(id string) EngineOption {
	return func(opts *engineOptions) {
		opts.NodeID = id
	}
}

// WithObserver returns an engine option that adds an observer that is
// notified about the progress of jobs.
func WithObserver(o jobexecutor.Observer) EngineOption {
	return func(opts *engineOptions) {
		opts.Observers = append(opts.Observers, o)
	}
}

// WithMetrics returns an engine option that registers the job executor's
// Prometheus collectors with reg.
//
// If this option is omitted, no metrics are collected.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return func(opts *engineOptions) {
		opts.Metrics = reg
	}
}

// WithObjectTypes returns an engine option that registers the types of the
// object values that may be stored in process variables.
//
// It is only used to build the default marshaler, it has no effect if the
// WithMarshaler() option is used.
func WithObjectTypes(values ...any) EngineOption {
	return func(opts *engineOptions) {
		for _, v := range values {
			opts.ObjectTypes = append(opts.ObjectTypes, reflect.TypeOf(v))
		}
	}
}

// NewDefaultMarshaler returns the default marshaler for object variables of
// the given types.
//
// It is used if the WithMarshaler() option is omitted. It returns nil if
// there are no types, in which case object variables can not be stored.
func NewDefaultMarshaler(types []reflect.Type) marshalkit.ValueMarshaler {
	if len(types) == 0 {
		return nil
	}

	m, err := codec.NewMarshaler(
		types,
		[]codec.Codec{
			&json.Codec{},
		},
	)
	if err != nil {
		panic(err)
	}

	return m
}

// WithMarshaler returns an engine option that sets the marshaler used to
// marshal and unmarshal object variables.
//
// If this option is omitted or m is nil, NewDefaultMarshaler() is called to
// obtain the default marshaler.
func WithMarshaler(m marshalkit.ValueMarshaler) EngineOption {
	return func(opts *engineOptions) {
		opts.Marshaler = m
	}
}

// WithLogger returns an engine option that sets the target for log messages
// produced by the engine.
//
// If this option is omitted or l is nil DefaultLogger is used.
func WithLogger(l logging.Logger) EngineOption {
	return func(opts *engineOptions) {
		opts.Logger = l
	}
}

// WithClock returns an engine option that sets the function used to obtain
// the current time.
//
// If this option is omitted or now is nil, time.Now() is used.
func WithClock(now func() time.Time) EngineOption {
	return func(opts *engineOptions) {
		opts.Now = now
	}
}

// engineOptions is a container for a fully-resolved set of engine options.
type engineOptions struct {
	PersistenceProvider   persistence.Provider
	ClusterKey            string
	JobExecutorDisabled   bool
	PollInterval          time.Duration
	MaxJobsPerAcquisition int
	CoreWorkers           int
	MaxWorkers            int
	QueueSize             *int
	LockDuration          time.Duration
	MaxRetries            int
	RetryPolicy           retry.Policy
	ConflictRetries       *uint64
	NodeID                string
	Observers             []jobexecutor.Observer
	Metrics               prometheus.Registerer
	ObjectTypes           []reflect.Type
	Marshaler             marshalkit.ValueMarshaler
	Logger                logging.Logger
	Now                   func() time.Time
}

// resolveEngineOptions returns a fully-populated set of engine options built
// from the given set of option functions.
func resolveEngineOptions(options ...EngineOption) *engineOptions {
	opts := &engineOptions{}

	for _, o := range options {
		o(opts)
	}

	if opts.PersistenceProvider == nil {
		opts.PersistenceProvider = DefaultPersistenceProvider
	}

	if opts.ClusterKey == "" {
		opts.ClusterKey = DefaultClusterKey
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}

	if opts.MaxJobsPerAcquisition <= 0 {
		opts.MaxJobsPerAcquisition = DefaultMaxJobsPerAcquisition
	}

	if opts.MaxWorkers == 0 {
		opts.CoreWorkers = DefaultCoreWorkers
		opts.MaxWorkers = DefaultMaxWorkers
	}

	if opts.QueueSize == nil {
		n := DefaultQueueSize
		opts.QueueSize = &n
	}

	if opts.LockDuration == 0 {
		opts.LockDuration = DefaultLockDuration
	}

	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}

	if opts.RetryPolicy == nil {
		opts.RetryPolicy = DefaultRetryPolicy
	}

	if opts.ConflictRetries == nil {
		n := DefaultConflictRetries
		opts.ConflictRetries = &n
	}

	if opts.NodeID == "" {
		opts.NodeID = uuid.NewString()
	}

	if opts.Marshaler == nil {
		opts.Marshaler = NewDefaultMarshaler(opts.ObjectTypes)
	}

	if opts.Logger == nil {
		opts.Logger = DefaultLogger
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return opts
}
