// Package pvm is the process virtual machine. It advances the executions of a
// process instance through a process definition.
package pvm

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/google/uuid"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/process"
)

// ResumePoint describes where an asynchronous continuation resumes an
// execution.
type ResumePoint = job.Continuation

// Scheduler creates and cancels jobs on behalf of the interpreter.
type Scheduler interface {
	// ScheduleJob creates a job.
	ScheduleJob(ctx context.Context, spec job.Spec) error

	// CancelJobs removes the jobs of an execution.
	//
	// If activityIDs is non-empty only jobs for those activities are removed.
	// It is not an error if there are no such jobs.
	CancelJobs(ctx context.Context, executionID string, activityIDs ...string) error

	// HasJobs returns true if an execution has a job at any of the given
	// activities, or at all if activityIDs is empty.
	HasJobs(ctx context.Context, executionID string, activityIDs ...string) (bool, error)
}

// Context is the environment in which the interpreter runs.
type Context struct {
	// Definition is the process definition of the instance.
	Definition *process.Definition

	// Jobs schedules asynchronous work.
	Jobs Scheduler

	// Now returns the current time. If it is nil, time.Now() is used.
	Now func() time.Time

	// NewID returns a new execution ID. If it is nil, random UUIDs are used.
	NewID func() string

	// Logger is the target for debug messages about the interpreter's
	// progress. If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger
}

func (pc *Context) now() time.Time {
	if pc.Now != nil {
		return pc.Now()
	}
	return time.Now()
}

func (pc *Context) newID() string {
	if pc.NewID != nil {
		return pc.NewID()
	}
	return uuid.NewString()
}
