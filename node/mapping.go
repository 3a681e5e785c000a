package node

import (
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/types"
)

func field(id, name string, typ types.FieldType, required bool) types.Field {
	return types.Field{ID: id, DisplayName: name, Type: typ, Required: required, Display: true}
}

// Fields the tool input fields of an operation, nil for an unknown one
func Fields(operation string) []types.Field {
	switch operation {
	case types.OperationExecuteQuery:
		return []types.Field{
			field("query", "Cypher Query", types.FieldTypeString, true),
			field("parameters", "Query Parameters", types.FieldTypeObject, false),
		}

	case types.OperationCreateNode:
		return []types.Field{
			field("labels", "Labels", types.FieldTypeString, true),
			field("properties", "Properties", types.FieldTypeObject, true),
		}

	case types.OperationMatchNodes:
		return []types.Field{
			field("labels", "Labels", types.FieldTypeString, false),
			field("properties", "Properties", types.FieldTypeObject, false),
			field("limit", "Limit", types.FieldTypeNumber, false),
		}

	case types.OperationUpdateNode:
		return []types.Field{
			field("nodeId", "Node ID", types.FieldTypeString, true),
			field("properties", "Properties", types.FieldTypeObject, true),
		}

	case types.OperationDeleteNode:
		return []types.Field{
			field("nodeId", "Node ID", types.FieldTypeString, true),
			field("detach", "Detach", types.FieldTypeBoolean, false),
		}

	case types.OperationCreateRelationship:
		return []types.Field{
			field("fromNodeId", "From Node ID", types.FieldTypeString, true),
			field("toNodeId", "To Node ID", types.FieldTypeString, true),
			field("relationshipType", "Relationship Type", types.FieldTypeString, true),
			field("properties", "Properties", types.FieldTypeObject, false),
		}
	}
	return nil
}

// ResourceMapping the fields of the operation picked in the host
func ResourceMapping(hctx host.Context) types.ResourceMapperFields {
	operation := host.String(hctx, "operation", 0)
	fields := Fields(operation)
	if fields == nil {
		log.Warn("[node] resource mapping: unknown operation %q", operation)
		fields = []types.Field{}
	}
	return types.ResourceMapperFields{Fields: fields}
}
