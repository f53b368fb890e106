package command

import (
	"bytes"
	"context"
	"sort"

	"github.com/operaton/operaton-sub059/execution"
	"github.com/operaton/operaton-sub059/job"
	"github.com/operaton/operaton-sub059/persistence"
)

// Job returns the job with the given ID.
//
// The returned pointer may be modified to update the job when the command
// completes.
func (c *Context) Job(ctx context.Context, id string) (*persistence.Job, error) {
	if e, ok := c.jobs[id]; ok {
		if e.current == nil {
			return nil, persistence.NotFoundError{Kind: "job", ID: id}
		}
		return e.current, nil
	}

	j, ok, err := c.exec.DataStore.LoadJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, persistence.NotFoundError{Kind: "job", ID: id}
	}

	return c.cacheJob(j), nil
}

// Jobs returns the jobs of a process instance, ordered by creation time.
func (c *Context) Jobs(ctx context.Context, processInstanceID string) ([]*persistence.Job, error) {
	if err := c.loadJobs(ctx, processInstanceID); err != nil {
		return nil, err
	}

	var jobs []*persistence.Job
	for _, e := range c.jobs {
		if e.current != nil && e.current.ProcessInstanceID == processInstanceID {
			jobs = append(jobs, e.current)
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
		}
		return jobs[i].ID < jobs[j].ID
	})

	return jobs, nil
}

// AddJob creates a new job.
func (c *Context) AddJob(j persistence.Job) *persistence.Job {
	j.Revision = 0
	c.jobs[j.ID] = &entry[persistence.Job]{current: &j}
	return &j
}

// RemoveJob removes the job with the given ID. It is not an error if the job
// has already been removed.
func (c *Context) RemoveJob(ctx context.Context, id string) error {
	if _, err := c.Job(ctx, id); err != nil {
		if _, ok := err.(persistence.NotFoundError); ok {
			return nil
		}
		return err
	}

	c.jobs[id].current = nil
	return nil
}

// NewJob returns a job created from spec. The job is not added to the
// context.
func (c *Context) NewJob(spec job.Spec) (persistence.Job, error) {
	payload, err := job.EncodePayload(c.exec.Marshaler, spec.Continuation)
	if err != nil {
		return persistence.Job{}, err
	}

	return persistence.Job{
		ID:                c.NewID(),
		Type:              spec.Type,
		DueDate:           spec.DueDate,
		ExecutionID:       spec.Continuation.ExecutionID,
		ProcessInstanceID: spec.ProcessInstanceID,
		DefinitionID:      spec.DefinitionID,
		ActivityID:        spec.Continuation.ActivityID,
		Payload:           payload,
		Retries:           c.exec.jobRetries(),
		Exclusive:         spec.Exclusive,
		Priority:          spec.Priority,
		CreatedAt:         c.now,
	}, nil
}

func (c *Context) cacheJob(j persistence.Job) *persistence.Job {
	orig := j
	c.jobs[j.ID] = &entry[persistence.Job]{
		original: &orig,
		current:  &j,
	}
	return &j
}

// loadJobs adds the persisted jobs of a process instance to the cache.
func (c *Context) loadJobs(ctx context.Context, processInstanceID string) error {
	in, ok := c.instances[processInstanceID]
	if ok && in.jobsLoaded {
		return nil
	}

	jobs, err := c.exec.DataStore.LoadJobsByProcessInstance(ctx, processInstanceID)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if _, ok := c.jobs[j.ID]; !ok {
			c.cacheJob(j)
		}
	}

	if ok {
		in.jobsLoaded = true
	}

	return nil
}

// scheduler is the pvm.Scheduler for one process instance.
type scheduler struct {
	c    *Context
	tree *execution.Tree
}

func (s *scheduler) ScheduleJob(ctx context.Context, spec job.Spec) error {
	j, err := s.c.NewJob(spec)
	if err != nil {
		return err
	}

	s.c.AddJob(j)
	return nil
}

func (s *scheduler) CancelJobs(ctx context.Context, executionID string, activityIDs ...string) error {
	jobs, err := s.c.Jobs(ctx, s.tree.ProcessInstanceID())
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if j.ExecutionID != executionID {
			continue
		}

		if len(activityIDs) != 0 && !contains(activityIDs, j.ActivityID) {
			continue
		}

		if err := s.c.RemoveJob(ctx, j.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *scheduler) HasJobs(ctx context.Context, executionID string, activityIDs ...string) (bool, error) {
	jobs, err := s.c.Jobs(ctx, s.tree.ProcessInstanceID())
	if err != nil {
		return false, err
	}

	for _, j := range jobs {
		if j.ExecutionID != executionID {
			continue
		}

		if len(activityIDs) == 0 || contains(activityIDs, j.ActivityID) {
			return true, nil
		}
	}

	return false, nil
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// jobsEqual returns true if a and b are identical, ignoring their revisions.
func jobsEqual(a, b persistence.Job) bool {
	if !bytes.Equal(a.Payload, b.Payload) {
		return false
	}

	return a.Type == b.Type &&
		a.DueDate.Equal(b.DueDate) &&
		a.ExecutionID == b.ExecutionID &&
		a.ProcessInstanceID == b.ProcessInstanceID &&
		a.DefinitionID == b.DefinitionID &&
		a.ActivityID == b.ActivityID &&
		a.Retries == b.Retries &&
		a.LockOwner == b.LockOwner &&
		a.LockExpiresAt.Equal(b.LockExpiresAt) &&
		a.Exclusive == b.Exclusive &&
		a.Priority == b.Priority &&
		a.Suspended == b.Suspended &&
		a.ExceptionMessage == b.ExceptionMessage &&
		a.CreatedAt.Equal(b.CreatedAt)
}
