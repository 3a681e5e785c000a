package plugin

import (
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/node-neo4j/process"
)

func init() {
	process.Register("plugins", processPlugins)
}

// processPlugins plugins.<id>.<method> payload
func processPlugins(process *process.Process) interface{} {
	plugin, err := Select(process.ID)
	if err != nil {
		exception.New("plugins.%s not loaded", 404, process.ID).Throw()
		return nil
	}

	var res interface{}
	payload, err := payloadOf(process.Arg(0))
	if err != nil {
		exception.New("%s", 400, err.Error()).Throw()
	}

	err = Call(plugin.Model, process.Method, payload, &res)
	if err != nil {
		exception.New("%s", 500, err.Error()).Throw()
	}
	return res
}
