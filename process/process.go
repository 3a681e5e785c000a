package process

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yaoapp/kun/exception"
)

// Handlers the registered process handlers
var Handlers = map[string]Handler{}

var handlerMutex sync.RWMutex

// DefaultTimeout the timeout of Execute when the process carries no context
var DefaultTimeout = 30 * time.Second

// New make a new process, panics when the name is invalid
func New(name string, args ...interface{}) *Process {
	process, err := Of(name, args...)
	if err != nil {
		exception.New("%s", 404, err.Error()).Throw()
	}
	return process
}

// Of make a new process and return error
func Of(name string, args ...interface{}) (*Process, error) {
	process := &Process{Name: name, Args: args}
	err := process.make()
	if err != nil {
		return nil, err
	}
	return process, nil
}

// Execute execute the process and return error only
//
//	process, err := process.Of("neo4j.loadOptions.getNodeLabels", payload)
//	if err != nil {
//	    return err
//	}
//	err = process.Execute()
//	if err != nil {
//	    return err
//	}
//	defer process.Release()
//	options := process.Value()
func (process *Process) Execute() error {
	if process.Context == nil {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		process.Context = ctx
	}

	hd, err := process.handler()
	if err != nil {
		return err
	}

	type result struct {
		value interface{}
		err   error
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				err := exception.Catch(recovered)
				if err == nil {
					err = fmt.Errorf("%v", recovered)
				}
				done <- result{err: err}
			}
		}()
		done <- result{value: hd(process)}
	}()

	select {
	case <-process.Context.Done():
		return process.Context.Err()
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		process._val = &res.value
		return nil
	}
}

// Exec execute the process and return the value
func (process *Process) Exec() (value interface{}, err error) {
	err = process.Execute()
	if err != nil {
		return nil, err
	}
	value = process.Value()
	process.Release()
	return value, nil
}

// Release the value of the process
func (process *Process) Release() {
	process._val = nil
}

// Value get the result of the process
func (process *Process) Value() interface{} {
	if process._val != nil {
		return *process._val
	}
	return nil
}

// Register register a process handler
func Register(name string, handler Handler) {
	name = strings.ToLower(name)
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	Handlers[name] = handler
}

// RegisterGroup register a process handler group
func RegisterGroup(name string, group map[string]Handler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	for method, handler := range group {
		id := fmt.Sprintf("%s.%s", strings.ToLower(name), strings.ToLower(method))
		Handlers[id] = handler
	}
}

func (process *Process) handler() (Handler, error) {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	if hander, has := Handlers[process.Handler]; has && hander != nil {
		return hander, nil
	}
	return nil, fmt.Errorf("%s Handler -> %s not found", process.Name, process.Handler)
}

// make parse the process name
//
//	neo4j.loadOptions.getNodeLabels  handler: neo4j.loadoptions.getnodelabels
//	plugins.movies.execute           handler: plugins, id: movies, method: execute
//	credentials.movies.Test          handler: credentials.test, id: movies, method: Test
func (process *Process) make() error {
	fields := strings.Split(process.Name, ".")
	if len(fields) < 2 {
		return fmt.Errorf("%s not found", process.Name)
	}

	process.Group = strings.ToLower(fields[0])
	switch process.Group {

	case "plugins":
		if len(fields) < 3 {
			return fmt.Errorf("%s not found", process.Name)
		}
		process.Handler = process.Group
		process.ID = strings.ToLower(strings.Join(fields[1:len(fields)-1], "."))
		process.Method = fields[len(fields)-1]

	case "credentials":
		if len(fields) < 3 {
			process.Method = fields[1]
			process.Handler = strings.ToLower(process.Group + "." + process.Method)
			return nil
		}
		process.Method = fields[len(fields)-1]
		process.ID = strings.ToLower(strings.Join(fields[1:len(fields)-1], "."))
		process.Handler = strings.ToLower(process.Group + "." + process.Method)

	default:
		process.Method = strings.Join(fields[1:], ".")
		process.Handler = strings.ToLower(process.Name)
	}

	return nil
}
