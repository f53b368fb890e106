package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	operaton "github.com/operaton/operaton-sub059"
	"github.com/operaton/operaton-sub059/persistence"
	"github.com/operaton/operaton-sub059/process"
	"github.com/operaton/operaton-sub059/variable"
)

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(title)
	tw.AppendHeader(header)
	return tw
}

func printDefinitions(w io.Writer, defs []*process.Definition) error {
	tw := newTable(w, "Definitions", table.Row{"ID", "Name", "Initial", "Activities"})
	for _, d := range defs {
		tw.AppendRow(table.Row{d.ID, d.Name, d.Initial, len(d.Activities())})
	}
	tw.Render()
	return nil
}

func printInstance(w io.Writer, pi operaton.ProcessInstance) {
	state := "active"
	if pi.IsEnded {
		state = "ended"
	}

	fmt.Fprintf(w, "process instance %s of '%s' (%s)\n", pi.ID, pi.DefinitionID, state)

	tw := newTable(w, "Executions", table.Row{"ID", "Parent", "Activity", "Concurrent", "Scope", "Active", "Ended"})
	for _, x := range pi.Executions {
		tw.AppendRow(table.Row{x.ID, x.ParentID, x.ActivityID, x.IsConcurrent, x.IsScope, x.IsActive, x.IsEnded})
	}
	tw.Render()
}

func printVariables(w io.Writer, vars variable.Map) {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	tw := newTable(w, "Variables", table.Row{"Name", "Type", "Value"})
	for _, n := range names {
		v := vars[n]
		tw.AppendRow(table.Row{n, v.Type(), v.String()})
	}
	tw.Render()
}

func printJobs(w io.Writer, jobs []persistence.Job) {
	tw := newTable(w, "Jobs", table.Row{"ID", "Type", "Activity", "Due", "Retries", "Locked By", "Suspended", "Exception"})
	for _, j := range jobs {
		tw.AppendRow(table.Row{
			j.ID,
			j.Type,
			j.ActivityID,
			formatTime(j.DueDate),
			j.Retries,
			j.LockOwner,
			j.Suspended,
			j.ExceptionMessage,
		})
	}
	tw.Render()
}

func printIncidents(w io.Writer, incidents []persistence.Incident) {
	tw := newTable(w, "Incidents", table.Row{"ID", "Job", "Execution", "Activity", "Created", "Message"})
	for _, i := range incidents {
		tw.AppendRow(table.Row{
			i.ID,
			i.JobID,
			i.ExecutionID,
			i.ActivityID,
			formatTime(i.CreatedAt),
			i.Message,
		})
	}
	tw.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
