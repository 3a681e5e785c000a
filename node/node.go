// Package node is the Neo4j node: its descriptor and the method table the
// host calls.
package node

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/grpc"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/router"
	"github.com/yaoapp/node-neo4j/types"
)

// Node serves the method table. Store resolves payloads that only carry a
// credentialId.
type Node struct {
	Store host.CredentialStore
}

// New create a node
func New(store host.CredentialStore) *Node {
	return &Node{Store: store}
}

// Methods the names accepted by Call
func Methods() []string {
	return []string{
		MethodDescribe,
		MethodCredentialTest,
		loadOptionsPrefix + LoadOptionsNodeLabels,
		loadOptionsPrefix + LoadOptionsRelationshipTypes,
		loadOptionsPrefix + LoadOptionsPropertyKeys,
		MethodResourceMapping,
		MethodExecute,
	}
}

// Call runs a method with the payload the host sent
func (n *Node) Call(ctx context.Context, method string, payload interface{}) (interface{}, error) {
	if method == MethodDescribe {
		return Describe(), nil
	}

	p, err := host.PayloadOf(payload)
	if err != nil {
		return nil, err
	}
	p.WithStore(n.Store)

	switch method {
	case MethodCredentialTest:
		cred, err := p.Credentials(ctx, host.CredentialName)
		if err != nil {
			return types.CredentialTestResult{Status: types.StatusError, Message: err.Error()}, nil
		}
		return CredentialTest(ctx, cred), nil

	case MethodResourceMapping:
		return ResourceMapping(p), nil

	case MethodExecute:
		return router.Execute(ctx, p)
	}

	if load, has := LoadOptions(method); has {
		return load(ctx, p), nil
	}

	return nil, fmt.Errorf("method %s does not support", method)
}

// Exec implements grpc.Model, the first argument is the payload and the
// response carries the JSON encoded result
func (n *Node) Exec(name string, args ...interface{}) (*grpc.Response, error) {
	id := uuid.NewString()
	logger := log.With(log.F{"request": id, "method": name})
	start := time.Now()

	var payload interface{}
	if len(args) > 0 {
		payload = args[0]
	}

	res, err := n.Call(context.Background(), name, payload)
	if err != nil {
		logger.Error("[node] %s failed: %s", name, err.Error())
		return nil, err
	}

	bytes, err := jsoniter.Marshal(res)
	if err != nil {
		logger.Error("[node] %s response: %s", name, err.Error())
		return nil, err
	}

	logger.Debug("[node] %s done in %s", name, time.Since(start))
	return &grpc.Response{Bytes: bytes}, nil
}
