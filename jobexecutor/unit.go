package jobexecutor

import (
	"github.com/operaton/operaton-sub059/internal/x/containerx/pqueue"
	"github.com/operaton/operaton-sub059/persistence"
)

// Unit is a set of jobs that are acquired and executed together.
//
// The exclusive jobs of a process instance that are acquired in the same cycle
// form a single unit, and are executed one after another in acquisition order.
// Every other job is a unit of its own.
type Unit struct {
	// ProcessInstanceID is the ID of the process instance that the jobs
	// belong to.
	ProcessInstanceID string

	// Exclusive is true if the unit's jobs are exclusive.
	Exclusive bool

	// Owner is the ID of the node that holds the locks on the jobs.
	Owner string

	// Jobs are the jobs to execute, in order.
	Jobs []persistence.Job
}

// Less returns true if u should be executed before e.
func (u *Unit) Less(e pqueue.Elem) bool {
	return u.Jobs[0].LessForAcquisition(e.(*Unit).Jobs[0])
}

// JobIDs returns the IDs of the unit's jobs.
func (u *Unit) JobIDs() []string {
	ids := make([]string, len(u.Jobs))
	for i, j := range u.Jobs {
		ids[i] = j.ID
	}
	return ids
}

func (u *Unit) contains(id string) bool {
	for _, j := range u.Jobs {
		if j.ID == id {
			return true
		}
	}
	return false
}

// group arranges jobs into units.
//
// jobs must be in acquisition order. The units are returned in the order of
// their first job.
func group(jobs []persistence.Job) []*Unit {
	var units []*Unit
	exclusive := map[string]*Unit{}

	for _, j := range jobs {
		if j.Exclusive {
			if u, ok := exclusive[j.ProcessInstanceID]; ok {
				u.Jobs = append(u.Jobs, j)
				continue
			}
		}

		u := &Unit{
			ProcessInstanceID: j.ProcessInstanceID,
			Exclusive:         j.Exclusive,
			Jobs:              []persistence.Job{j},
		}
		units = append(units, u)

		if j.Exclusive {
			exclusive[j.ProcessInstanceID] = u
		}
	}

	return units
}
