package command

import (
	"context"

	"github.com/operaton/operaton-sub059/persistence"
)

// Incidents returns the incidents of a job.
func (c *Context) Incidents(ctx context.Context, jobID string) ([]*persistence.Incident, error) {
	loaded, err := c.exec.DataStore.LoadIncidentsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	for _, i := range loaded {
		if _, ok := c.incidents[i.ID]; !ok {
			orig, cur := i, i
			c.incidents[i.ID] = &entry[persistence.Incident]{&orig, &cur}
		}
	}

	var incidents []*persistence.Incident
	for _, id := range sortedKeys(c.incidents) {
		if i := c.incidents[id].current; i != nil && i.JobID == jobID {
			incidents = append(incidents, i)
		}
	}

	return incidents, nil
}

// AddIncident records a new incident.
func (c *Context) AddIncident(i persistence.Incident) {
	i.Revision = 0
	c.incidents[i.ID] = &entry[persistence.Incident]{current: &i}
}

// RemoveIncident removes an incident previously returned by Incidents().
func (c *Context) RemoveIncident(id string) {
	if e, ok := c.incidents[id]; ok {
		e.current = nil
	}
}
