package router

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

// ItemOf converts a record into an item, column names become keys
func ItemOf(record *neo4j.Record) types.Item {
	item := types.Item{}
	for i, key := range record.Keys {
		if i < len(record.Values) {
			item[key] = ValueOf(record.Values[i])
		}
	}
	return item
}

// ValueOf converts a driver value into plain JSON friendly data
func ValueOf(value interface{}) interface{} {
	switch v := value.(type) {
	case neo4j.Node:
		return nodeOf(v)

	case neo4j.Relationship:
		return relationshipOf(v)

	case neo4j.Path:
		nodes := make([]interface{}, len(v.Nodes))
		for i, node := range v.Nodes {
			nodes[i] = nodeOf(node)
		}
		rels := make([]interface{}, len(v.Relationships))
		for i, rel := range v.Relationships {
			rels[i] = relationshipOf(rel)
		}
		return map[string]interface{}{
			"nodes":         nodes,
			"relationships": rels,
			"length":        len(v.Relationships),
		}

	case []interface{}:
		res := make([]interface{}, len(v))
		for i, elem := range v {
			res[i] = ValueOf(elem)
		}
		return res

	case map[string]interface{}:
		res := make(map[string]interface{}, len(v))
		for key, elem := range v {
			res[key] = ValueOf(elem)
		}
		return res

	case time.Time:
		return v.Format(time.RFC3339Nano)

	case fmt.Stringer:
		// dates, times, durations and points
		return v.String()
	}
	return value
}

func nodeOf(node neo4j.Node) map[string]interface{} {
	labels := node.Labels
	if labels == nil {
		labels = []string{}
	}
	return map[string]interface{}{
		"elementId":  node.ElementId,
		"labels":     labels,
		"properties": propsOf(node.Props),
	}
}

func relationshipOf(rel neo4j.Relationship) map[string]interface{} {
	return map[string]interface{}{
		"elementId":          rel.ElementId,
		"type":               rel.Type,
		"startNodeElementId": rel.StartElementId,
		"endNodeElementId":   rel.EndElementId,
		"properties":         propsOf(rel.Props),
	}
}

func propsOf(props map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{}, len(props))
	for key, value := range props {
		res[key] = ValueOf(value)
	}
	return res
}
