package node

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/types"
)

// Version the node version
const Version = "1.0.0"

// Describe the static node metadata
func Describe() types.Description {
	return types.Description{
		Name:        "neo4j",
		DisplayName: "Neo4j",
		Version:     Version,
		Icon:        "file:neo4j.svg",
		Group:       []string{"transform"},
		Description: "Work with nodes and relationships in a Neo4j graph database",
		Subtitle:    `={{$parameter["operation"]}}`,
		Defaults:    map[string]interface{}{"name": "Neo4j"},
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credentials: []types.CredentialRequirement{
			{Name: host.CredentialName, Required: true, TestedBy: MethodCredentialTest},
		},
		Properties:   properties(),
		UsableAsTool: true,
		Methods: types.Methods{
			CredentialTest:  []string{MethodCredentialTest},
			LoadOptions:     []string{LoadOptionsNodeLabels, LoadOptionsRelationshipTypes, LoadOptionsPropertyKeys},
			ResourceMapping: []string{MethodResourceMapping},
		},
	}
}

// CheckVersion validates a descriptor version
func CheckVersion(version string) error {
	if _, err := semver.Parse(version); err != nil {
		return fmt.Errorf("invalid node version %q: %w", version, err)
	}
	return nil
}

func properties() []types.Property {
	operations := []types.PropertyOption{
		{Name: "Execute Query", Value: types.OperationExecuteQuery, Description: "Run a Cypher statement", Action: "Execute a Cypher query"},
		{Name: "Create Node", Value: types.OperationCreateNode, Description: "Create a node", Action: "Create a node"},
		{Name: "Match Nodes", Value: types.OperationMatchNodes, Description: "Find nodes by label and properties", Action: "Match nodes"},
		{Name: "Update Node", Value: types.OperationUpdateNode, Description: "Update the properties of a node", Action: "Update a node"},
		{Name: "Delete Node", Value: types.OperationDeleteNode, Description: "Delete a node", Action: "Delete a node"},
		{Name: "Create Relationship", Value: types.OperationCreateRelationship, Description: "Link two nodes", Action: "Create a relationship"},
	}

	show := func(operations ...string) *types.DisplayOptions {
		return &types.DisplayOptions{Show: map[string][]string{"operation": operations}}
	}

	return []types.Property{
		{
			DisplayName:      "Operation",
			Name:             "operation",
			Type:             "options",
			NoDataExpression: true,
			Default:          types.OperationExecuteQuery,
			Options:          operations,
		},
		{
			DisplayName:    "Query",
			Name:           "query",
			Type:           "string",
			Default:        "",
			Required:       true,
			Placeholder:    "MATCH (n) RETURN n LIMIT 10",
			TypeOptions:    map[string]interface{}{"rows": 5},
			DisplayOptions: show(types.OperationExecuteQuery),
		},
		{
			DisplayName:    "Parameters",
			Name:           "parameters",
			Type:           "json",
			Default:        "{}",
			Description:    "Query parameters as a JSON object",
			DisplayOptions: show(types.OperationExecuteQuery),
		},
		{
			DisplayName:    "Labels",
			Name:           "labels",
			Type:           "string",
			Default:        "",
			Required:       true,
			Description:    "Comma separated node labels",
			TypeOptions:    map[string]interface{}{"loadOptionsMethod": LoadOptionsNodeLabels},
			DisplayOptions: show(types.OperationCreateNode),
		},
		{
			DisplayName:    "Labels",
			Name:           "labels",
			Type:           "string",
			Default:        "",
			Description:    "Comma separated node labels to match",
			TypeOptions:    map[string]interface{}{"loadOptionsMethod": LoadOptionsNodeLabels},
			DisplayOptions: show(types.OperationMatchNodes),
		},
		{
			DisplayName:    "Properties",
			Name:           "properties",
			Type:           "json",
			Default:        "{}",
			Required:       true,
			DisplayOptions: show(types.OperationCreateNode, types.OperationUpdateNode),
		},
		{
			DisplayName:    "Properties",
			Name:           "properties",
			Type:           "json",
			Default:        "{}",
			Description:    "Only nodes with these property values match",
			DisplayOptions: show(types.OperationMatchNodes, types.OperationCreateRelationship),
		},
		{
			DisplayName:    "Limit",
			Name:           "limit",
			Type:           "number",
			Default:        50,
			TypeOptions:    map[string]interface{}{"minValue": 1},
			DisplayOptions: show(types.OperationMatchNodes),
		},
		{
			DisplayName:    "Node ID",
			Name:           "nodeId",
			Type:           "string",
			Default:        "",
			Required:       true,
			Description:    "The element id of the node",
			DisplayOptions: show(types.OperationUpdateNode, types.OperationDeleteNode),
		},
		{
			DisplayName:    "Detach",
			Name:           "detach",
			Type:           "boolean",
			Default:        true,
			Description:    "Whether to delete the relationships of the node too",
			DisplayOptions: show(types.OperationDeleteNode),
		},
		{
			DisplayName:    "From Node ID",
			Name:           "fromNodeId",
			Type:           "string",
			Default:        "",
			Required:       true,
			DisplayOptions: show(types.OperationCreateRelationship),
		},
		{
			DisplayName:    "To Node ID",
			Name:           "toNodeId",
			Type:           "string",
			Default:        "",
			Required:       true,
			DisplayOptions: show(types.OperationCreateRelationship),
		},
		{
			DisplayName:    "Relationship Type",
			Name:           "relationshipType",
			Type:           "string",
			Default:        "",
			Required:       true,
			TypeOptions:    map[string]interface{}{"loadOptionsMethod": LoadOptionsRelationshipTypes},
			DisplayOptions: show(types.OperationCreateRelationship),
		},
	}
}
