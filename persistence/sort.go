package persistence

import "sort"

// SortExecutions sorts executions by ID.
func SortExecutions(xs []Execution) {
	sort.Slice(xs, func(i, j int) bool {
		return xs[i].ID < xs[j].ID
	})
}

// SortVariables sorts variables by execution ID, then name.
func SortVariables(vs []Variable) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].ExecutionID != vs[j].ExecutionID {
			return vs[i].ExecutionID < vs[j].ExecutionID
		}
		return vs[i].Name < vs[j].Name
	})
}

// SortJobs sorts jobs by creation time, then ID.
func SortJobs(js []Job) {
	sort.Slice(js, func(i, j int) bool {
		if !js[i].CreatedAt.Equal(js[j].CreatedAt) {
			return js[i].CreatedAt.Before(js[j].CreatedAt)
		}
		return js[i].ID < js[j].ID
	})
}

// SortJobsForAcquisition sorts jobs in acquisition order.
func SortJobsForAcquisition(js []Job) {
	sort.Slice(js, func(i, j int) bool {
		return js[i].LessForAcquisition(js[j])
	})
}

// SortIncidents sorts incidents by creation time, then ID.
func SortIncidents(is []Incident) {
	sort.Slice(is, func(i, j int) bool {
		if !is[i].CreatedAt.Equal(is[j].CreatedAt) {
			return is[i].CreatedAt.Before(is[j].CreatedAt)
		}
		return is[i].ID < is[j].ID
	})
}
