// Package mcp serves the node operations as MCP tools, so agents can use the
// node without a workflow host.
package mcp

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/json"
	"github.com/yaoapp/node-neo4j/neo4j"
	"github.com/yaoapp/node-neo4j/node"
	"github.com/yaoapp/node-neo4j/router"
	"github.com/yaoapp/node-neo4j/types"
)

// ToolPrefix the prefix of every tool name
const ToolPrefix = "neo4j_"

// Options configures the credentials the tools run with. CredentialID is
// resolved by Store, Credentials are used as given.
type Options struct {
	Credentials  *types.Credentials
	CredentialID string
	Store        host.CredentialStore
}

// Server the MCP tool server
type Server struct {
	options    Options
	mcp        *server.MCPServer
	validators map[string]*json.Validator
}

// New create a server with one tool per operation plus the picker lists
func New(options Options) (*Server, error) {
	if options.Credentials == nil && options.CredentialID == "" {
		return nil, fmt.Errorf("credentials or a credential id are required")
	}
	if options.CredentialID != "" && options.Store == nil {
		return nil, fmt.Errorf("credential %s: no credential store", options.CredentialID)
	}

	s := &Server{
		options:    options,
		mcp:        server.NewMCPServer("neo4j", node.Version, server.WithToolCapabilities(false)),
		validators: map[string]*json.Validator{},
	}

	for _, operation := range types.Operations {
		fields := node.Fields(operation)
		validator, err := json.NewValidator(json.SchemaOf(fields))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		s.validators[operation] = validator
		s.mcp.AddTool(Tool(operation, fields), s.Operation(operation))
	}

	for _, method := range []string{node.LoadOptionsNodeLabels, node.LoadOptionsRelationshipTypes, node.LoadOptionsPropertyKeys} {
		tool := mcp.NewTool(ToolPrefix+method, mcp.WithDescription(descriptions[method]))
		s.mcp.AddTool(tool, s.LoadOptions(method))
	}

	return s, nil
}

// ServeStdio serves the tools over stdin and stdout until the client leaves
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Tool the tool definition of an operation
func Tool(operation string, fields []types.Field) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(descriptions[operation])}
	for _, field := range fields {
		props := []mcp.PropertyOption{mcp.Description(field.DisplayName)}
		if field.Required {
			props = append(props, mcp.Required())
		}

		switch field.Type {
		case types.FieldTypeObject:
			opts = append(opts, mcp.WithObject(field.ID, props...))
		case types.FieldTypeNumber:
			opts = append(opts, mcp.WithNumber(field.ID, props...))
		case types.FieldTypeBoolean:
			opts = append(opts, mcp.WithBoolean(field.ID, props...))
		default:
			opts = append(opts, mcp.WithString(field.ID, props...))
		}
	}
	return mcp.NewTool(ToolPrefix+operation, opts...)
}

// Operation the tool handler of an operation
func (s *Server) Operation(operation string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		if validator, has := s.validators[operation]; has {
			if err := validator.Validate(args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		params := map[string]interface{}{}
		for key, value := range args {
			params[key] = value
		}
		params["operation"] = operation

		items, err := router.Execute(ctx, s.payload(params))
		if err != nil {
			log.With(log.F{"tool": request.Params.Name}).Warn("[mcp] %s", err.Error())
			return mcp.NewToolResultError(neo4j.ParseError(err)), nil
		}
		return result(items)
	}
}

// LoadOptions the tool handler listing labels, relationship types or keys
func (s *Server) LoadOptions(method string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		load, has := node.LoadOptions(method)
		if !has {
			return mcp.NewToolResultError(fmt.Sprintf("%s does not support", method)), nil
		}

		options := load(ctx, s.payload(nil))
		if len(options) == 1 && options[0].Value == neo4j.ErrorOptionValue {
			return mcp.NewToolResultError(options[0].Name), nil
		}

		names := make([]string, 0, len(options))
		for _, option := range options {
			names = append(names, option.Value)
		}
		return result(names)
	}
}

func (s *Server) payload(params map[string]interface{}) *host.Payload {
	p := &host.Payload{Parameters: params, CredentialID: s.options.CredentialID}
	if s.options.Credentials != nil {
		p.CredentialsData = map[string]interface{}{host.CredentialName: *s.options.Credentials}
	}
	return p.WithStore(s.options.Store)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok && args != nil {
		return args
	}
	return map[string]interface{}{}
}

func result(v interface{}) (*mcp.CallToolResult, error) {
	text, err := jsoniter.MarshalToString(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

var descriptions = map[string]string{
	types.OperationExecuteQuery:       "Run a Cypher statement with optional parameters and return the rows",
	types.OperationCreateNode:         "Create a node with comma separated labels and properties",
	types.OperationMatchNodes:         "Find nodes by labels and property values",
	types.OperationUpdateNode:         "Merge properties into the node with the given element id",
	types.OperationDeleteNode:         "Delete the node with the given element id",
	types.OperationCreateRelationship: "Create a typed relationship between two nodes given by element id",
	node.LoadOptionsNodeLabels:        "List the node labels of the database",
	node.LoadOptionsRelationshipTypes: "List the relationship types of the database",
	node.LoadOptionsPropertyKeys:      "List the property keys of the database",
}
