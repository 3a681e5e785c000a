// Package router runs the node operations against Neo4j for every input item
package router

import (
	"context"
	"fmt"

	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/json"
	"github.com/yaoapp/node-neo4j/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

// Execute runs the selected operation for every input item over a single
// connection. A failing item aborts the call unless continueOnFail is set,
// then it becomes an {"error": message} item.
func Execute(ctx context.Context, hctx host.Context) ([]types.Item, error) {
	cred, err := hctx.Credentials(ctx, host.CredentialName)
	if err != nil {
		return nil, err
	}

	conn, err := neo4j.Dial(ctx, cred, 0)
	if err != nil {
		return nil, &dialError{message: neo4j.ParseError(err), err: err}
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.Error("[router] failed to close Neo4j driver: %s", err.Error())
		}
	}()

	output := []types.Item{}
	for index := range hctx.Items() {
		items, err := executeItem(ctx, conn, hctx, index)
		if err != nil {
			if hctx.ContinueOnFail() {
				output = append(output, types.Item{"error": neo4j.ParseError(err)})
				continue
			}
			return nil, fmt.Errorf("item %d: %w", index, err)
		}
		output = append(output, items...)
	}
	return output, nil
}

func executeItem(ctx context.Context, conn neo4j.Conn, hctx host.Context, index int) ([]types.Item, error) {
	stmt, err := Build(hctx, index)
	if err != nil {
		return nil, err
	}

	log.Debug("[router] item %d %s", index, stmt.Cypher)
	run := conn.Read
	if stmt.Write {
		run = conn.Write
	}
	records, err := run(ctx, stmt.Cypher, stmt.Params)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 && stmt.Required != "" {
		return nil, fmt.Errorf("%s", stmt.Required)
	}

	items := make([]types.Item, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}

		item := ItemOf(record)
		if stmt.Column != "" {
			if entity, ok := item[stmt.Column].(map[string]interface{}); ok {
				item = types.Item(entity)
			}
		}
		if stmt.Deleted {
			item = types.Item{"deleted": true, "nodeId": item["deletedId"]}
		}
		items = append(items, item)
	}
	return items, nil
}

// Build the statement of the item at index
func Build(hctx host.Context, index int) (*Statement, error) {
	operation := host.String(hctx, "operation", index)
	switch operation {
	case types.OperationExecuteQuery:
		params, err := json.Object(host.Value(hctx, "parameters", index))
		if err != nil {
			return nil, fmt.Errorf("parameters: %w", err)
		}
		return ExecuteQuery(host.String(hctx, "query", index), params)

	case types.OperationCreateNode:
		props, err := objectOf(hctx, "properties", index, true)
		if err != nil {
			return nil, err
		}
		return CreateNode(host.String(hctx, "labels", index), props)

	case types.OperationMatchNodes:
		props, err := objectOf(hctx, "properties", index, false)
		if err != nil {
			return nil, err
		}
		return MatchNodes(host.String(hctx, "labels", index), props, host.Int(hctx, "limit", index, DefaultLimit))

	case types.OperationUpdateNode:
		props, err := objectOf(hctx, "properties", index, true)
		if err != nil {
			return nil, err
		}
		return UpdateNode(host.String(hctx, "nodeId", index), props)

	case types.OperationDeleteNode:
		return DeleteNode(host.String(hctx, "nodeId", index), host.Bool(hctx, "detach", index, true))

	case types.OperationCreateRelationship:
		props, err := objectOf(hctx, "properties", index, false)
		if err != nil {
			return nil, err
		}
		return CreateRelationship(
			host.String(hctx, "fromNodeId", index),
			host.String(hctx, "toNodeId", index),
			host.String(hctx, "relationshipType", index),
			props,
		)
	}

	return nil, fmt.Errorf("operation %q does not support", operation)
}

// objectOf reads a JSON object parameter, a missing required one is nil
func objectOf(hctx host.Context, name string, index int, required bool) (map[string]interface{}, error) {
	value, has := hctx.Parameter(name, index)
	if !has || value == nil {
		if required {
			return nil, nil
		}
		return map[string]interface{}{}, nil
	}

	obj, err := json.Object(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return obj, nil
}

// dialError keeps the driver error behind the user message
type dialError struct {
	message string
	err     error
}

func (e *dialError) Error() string { return e.message }

func (e *dialError) Unwrap() error { return e.err }
