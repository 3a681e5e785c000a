package process

import (
	"github.com/yaoapp/kun/exception"
)

// ArgsNotNull parameters should be not null
func (process *Process) ArgsNotNull(i int) {
	if len(process.Args) <= i || process.Args[i] == nil {
		exception.New("%s The %d parameter cannot be empty", 400, process.Name, i).Throw()
	}
}

// Arg the i-th parameter as is, nil when it is not given
func (process *Process) Arg(i int) interface{} {
	if len(process.Args) <= i {
		return nil
	}
	return process.Args[i]
}
