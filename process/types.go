package process

import (
	"context"
)

// Process the process sturct
type Process struct {
	Name    string
	Group   string
	Method  string
	Handler string
	ID      string
	Args    []interface{}
	Context context.Context // Context
	_val    *interface{}    // The result of the process
}

// Handler the process handler
type Handler func(process *Process) interface{}
