package execution

import (
	"github.com/operaton/operaton-sub059/variable"
)

// Execution is a single path of execution within a process instance.
type Execution struct {
	ID       string
	ParentID string

	// Children is the ordered list of child execution IDs.
	Children []string

	// ActivityID is the ID of the current activity. It is empty when the
	// execution only coordinates concurrent children.
	ActivityID string

	IsConcurrent bool
	IsScope      bool
	IsActive     bool
	IsEnded      bool

	// Variables are the variables owned by this execution. Only executions
	// that own a variable scope have variables.
	Variables variable.Map
}

// OwnsVariables returns true if the execution has its own variable scope.
//
// Concurrent executions that are not scopes delegate to their parent.
func (x *Execution) OwnsVariables() bool {
	return !x.IsConcurrent || x.IsScope
}

// IsRoot returns true if x is the root of its tree.
func (x *Execution) IsRoot() bool {
	return x.ParentID == ""
}

func (x *Execution) clone() *Execution {
	c := *x
	c.Children = append([]string(nil), x.Children...)

	if x.Variables != nil {
		c.Variables = make(variable.Map, len(x.Variables))
		for k, v := range x.Variables {
			c.Variables[k] = v
		}
	}

	return &c
}
