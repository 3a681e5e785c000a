package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/node-neo4j/credential"
	"github.com/yaoapp/node-neo4j/neo4j"
	"github.com/yaoapp/node-neo4j/node"
	"github.com/yaoapp/node-neo4j/types"
)

var testCred = &types.Credentials{Host: "localhost", Username: "neo4j", Password: "secret"}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	if !assert.NotNil(t, res) || !assert.Len(t, res.Content, 1) {
		return ""
	}
	content, ok := mcp.AsTextContent(res.Content[0])
	assert.True(t, ok)
	return content.Text
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{CredentialID: "movies"})
	assert.Error(t, err)

	s, err := New(Options{Credentials: testCred})
	assert.Nil(t, err)
	assert.NotNil(t, s.MCPServer())
	assert.Len(t, s.validators, len(types.Operations))
}

func TestTool(t *testing.T) {
	tool := Tool(types.OperationCreateNode, node.Fields(types.OperationCreateNode))
	assert.Equal(t, "neo4j_createNode", tool.Name)
	assert.ElementsMatch(t, []string{"labels", "properties"}, tool.InputSchema.Required)
	assert.Equal(t, "object", tool.InputSchema.Properties["properties"].(map[string]interface{})["type"])
	assert.Equal(t, "string", tool.InputSchema.Properties["labels"].(map[string]interface{})["type"])

	tool = Tool(types.OperationDeleteNode, node.Fields(types.OperationDeleteNode))
	assert.Equal(t, []string{"nodeId"}, tool.InputSchema.Required)
	assert.Equal(t, "boolean", tool.InputSchema.Properties["detach"].(map[string]interface{})["type"])
}

func TestOperation(t *testing.T) {
	conn := &neo4j.MockConn{
		WriteFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return []*driver.Record{neo4j.NewRecord([]string{"n"}, driver.Node{
				ElementId: "4:db:1",
				Labels:    []string{"Person"},
				Props:     params["props"].(map[string]interface{}),
			})}, nil
		},
	}
	defer conn.Use()()

	s, err := New(Options{Credentials: testCred})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	handler := s.Operation(types.OperationCreateNode)

	res, err := handler(ctx, call("neo4j_createNode", map[string]interface{}{
		"labels":     "Person",
		"properties": `{"name": "Keanu"}`,
	}))
	assert.Nil(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `[{"elementId": "4:db:1", "labels": ["Person"], "properties": {"name": "Keanu"}}]`, text(t, res))

	res, err = handler(ctx, call("neo4j_createNode", map[string]interface{}{"labels": "Person"}))
	assert.Nil(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "validation failed")
	assert.Len(t, conn.Queries(), 1)

	res, err = handler(ctx, call("neo4j_createNode", nil))
	assert.Nil(t, err)
	assert.True(t, res.IsError)
}

func TestOperationStore(t *testing.T) {
	conn := &neo4j.MockConn{
		WriteFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return nil, &driver.Neo4jError{Code: neo4j.CodeSyntaxError, Msg: "Invalid input 'X'\n  ^"}
		},
	}
	defer conn.Use()()

	store := credential.New()
	_, err := store.LoadSource([]byte(`{"type": "neo4j", "options": {"host": "localhost", "user": "neo4j", "pass": "pw"}}`), "movies", "movies.neo4j.json")
	if err != nil {
		t.Fatal(err)
	}

	s, err := New(Options{CredentialID: "movies", Store: store})
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Operation(types.OperationExecuteQuery)(context.Background(), call("neo4j_executeQuery", map[string]interface{}{
		"query": "CREATE X",
	}))
	assert.Nil(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Cypher syntax error: Invalid input 'X'", text(t, res))
	assert.Equal(t, "pw", conn.Credentials().Password)
}

func TestLoadOptions(t *testing.T) {
	conn := &neo4j.MockConn{
		ReadFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return []*driver.Record{
				neo4j.NewRecord([]string{"label"}, "Person"),
				neo4j.NewRecord([]string{"label"}, "Movie"),
			}, nil
		},
	}
	defer conn.Use()()

	s, err := New(Options{Credentials: testCred})
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.LoadOptions(node.LoadOptionsNodeLabels)(context.Background(), call("neo4j_getNodeLabels", nil))
	assert.Nil(t, err)
	assert.JSONEq(t, `["Movie", "Person"]`, text(t, res))

	conn.VerifyErr = errors.New("connection refused")
	res, err = s.LoadOptions(node.LoadOptionsNodeLabels)(context.Background(), call("neo4j_getNodeLabels", nil))
	assert.Nil(t, err)
	assert.True(t, res.IsError)

	res, err = s.LoadOptions("getIndexes")(context.Background(), call("neo4j_getIndexes", nil))
	assert.Nil(t, err)
	assert.True(t, res.IsError)
}
