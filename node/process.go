package node

import (
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/node-neo4j/credential"
	"github.com/yaoapp/node-neo4j/process"
)

// Default the node bound to the process handlers, it resolves credential ids
// with the default credential store
var Default = New(credential.Default)

func init() {
	group := map[string]process.Handler{}
	for _, method := range Methods() {
		group[method] = processMethod(method)
	}
	process.RegisterGroup("neo4j", group)
	process.RegisterGroup("credentials", map[string]process.Handler{
		"List": processCredentialsList,
		"Test": processCredentialsTest,
	})
}

// processMethod neo4j.<method> payload
func processMethod(method string) process.Handler {
	return func(p *process.Process) interface{} {
		if method != MethodDescribe {
			p.ArgsNotNull(0)
		}
		res, err := Default.Call(p.Context, method, p.Arg(0))
		if err != nil {
			exception.New("%s", 500, err.Error()).Throw()
		}
		return res
	}
}

// processCredentialsList credentials.List
func processCredentialsList(p *process.Process) interface{} {
	return credential.Default.Options()
}

// processCredentialsTest credentials.<id>.Test
func processCredentialsTest(p *process.Process) interface{} {
	connector, err := credential.Default.Select(p.ID)
	if err != nil {
		exception.New("%s", 404, err.Error()).Throw()
	}
	return CredentialTest(p.Context, connector.Credentials)
}
