package jobexecutor

import (
	"context"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/operaton/operaton-sub059/persistence"
)

// Observer is notified about the progress of jobs.
//
// Notifications are informational. A panic within an observer is recovered and
// logged, it never affects the job.
type Observer interface {
	// JobAcquired is called when a job is locked by the acquirer.
	JobAcquired(ctx context.Context, j persistence.Job)

	// JobExecuted is called when a job has been executed successfully.
	JobExecuted(ctx context.Context, j persistence.Job)

	// JobFailed is called when an attempt to execute a job has failed.
	//
	// j is the state of the job after the failure has been recorded.
	JobFailed(ctx context.Context, j persistence.Job, cause error)

	// IncidentCreated is called when a job has run out of retries.
	IncidentCreated(ctx context.Context, i persistence.Incident)
}

// NoopObserver is an Observer that ignores every notification. It can be
// embedded in observers that are only interested in some notifications.
type NoopObserver struct{}

// JobAcquired does nothing.
func (NoopObserver) JobAcquired(context.Context, persistence.Job) {}

// JobExecuted does nothing.
func (NoopObserver) JobExecuted(context.Context, persistence.Job) {}

// JobFailed does nothing.
func (NoopObserver) JobFailed(context.Context, persistence.Job, error) {}

// IncidentCreated does nothing.
func (NoopObserver) IncidentCreated(context.Context, persistence.Incident) {}

// notify calls fn with o, recovering from any panic.
func notify(logger logging.Logger, o Observer, fn func(Observer)) {
	if o == nil {
		return
	}

	defer func() {
		if v := recover(); v != nil {
			logging.Log(logger, "job observer panicked: %v", v)
		}
	}()

	fn(o)
}

// Observers is an Observer that notifies each of its elements in turn.
type Observers []Observer

// JobAcquired notifies each observer in s.
func (s Observers) JobAcquired(ctx context.Context, j persistence.Job) {
	for _, o := range s {
		o.JobAcquired(ctx, j)
	}
}

// JobExecuted notifies each observer in s.
func (s Observers) JobExecuted(ctx context.Context, j persistence.Job) {
	for _, o := range s {
		o.JobExecuted(ctx, j)
	}
}

// JobFailed notifies each observer in s.
func (s Observers) JobFailed(ctx context.Context, j persistence.Job, cause error) {
	for _, o := range s {
		o.JobFailed(ctx, j, cause)
	}
}

// IncidentCreated notifies each observer in s.
func (s Observers) IncidentCreated(ctx context.Context, i persistence.Incident) {
	for _, o := range s {
		o.IncidentCreated(ctx, i)
	}
}
