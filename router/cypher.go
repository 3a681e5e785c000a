package router

import (
	"regexp"
	"strings"

	"github.com/go-errors/errors"
)

// DefaultLimit the row limit of matchNodes when none is given
const DefaultLimit = 50

// Statement a parameterized Cypher statement
type Statement struct {
	Cypher string
	Params map[string]interface{}
	Write  bool

	// Column the returned column holding the entity, empty to return the
	// whole record
	Column string

	// Required the statement must return at least one row
	Required string

	// Deleted the rows carry the id of a deleted node in deletedId
	Deleted bool
}

var writeClause = regexp.MustCompile(`(?i)\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP|FOREACH|LOAD\s+CSV)\b`)

var callClause = regexp.MustCompile(`(?i)\bCALL\s+([A-Za-z_][\w.]*)`)

// readProcedures the procedures allowed in a read session, names ending
// with a dot match the whole namespace
var readProcedures = []string{
	"db.labels",
	"db.relationshiptypes",
	"db.propertykeys",
	"db.schema.",
	"db.indexes",
	"db.constraints",
	"db.info",
	"db.ping",
	"db.index.fulltext.querynodes",
	"db.index.fulltext.queryrelationships",
	"dbms.components",
	"dbms.procedures",
	"dbms.functions",
	"apoc.meta.",
}

// Quote backtick-quotes a label, relationship type or property key
func Quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// SplitLabels splits a comma separated label list, blanks are dropped
func SplitLabels(text string) []string {
	labels := []string{}
	for _, label := range strings.Split(text, ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// IsReadOnly reports whether a statement can run in a read session. A
// procedure call is read-only only when the procedure is a known reader.
func IsReadOnly(cypher string) bool {
	if writeClause.MatchString(cypher) {
		return false
	}
	for _, match := range callClause.FindAllStringSubmatch(cypher, -1) {
		if !isReadProcedure(match[1]) {
			return false
		}
	}
	return true
}

func isReadProcedure(name string) bool {
	name = strings.ToLower(name)
	for _, proc := range readProcedures {
		if name == proc || (strings.HasSuffix(proc, ".") && strings.HasPrefix(name, proc)) {
			return true
		}
	}
	return false
}

func labelPattern(labels []string) string {
	var b strings.Builder
	for _, label := range labels {
		b.WriteString(":")
		b.WriteString(Quote(label))
	}
	return b.String()
}

// ExecuteQuery a user statement, the access mode follows the statement
func ExecuteQuery(query string, params map[string]interface{}) (*Statement, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Errorf("query is required")
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return &Statement{Cypher: query, Params: params, Write: !IsReadOnly(query)}, nil
}

// CreateNode creates one node with every label in the list
func CreateNode(labels string, props map[string]interface{}) (*Statement, error) {
	names := SplitLabels(labels)
	if len(names) == 0 {
		return nil, errors.Errorf("labels is required")
	}
	if props == nil {
		return nil, errors.Errorf("properties is required")
	}
	return &Statement{
		Cypher: "CREATE (n" + labelPattern(names) + " $props) RETURN n",
		Params: map[string]interface{}{"props": props},
		Write:  true,
		Column: "n",
	}, nil
}

// MatchNodes finds nodes by labels and property equality
func MatchNodes(labels string, props map[string]interface{}, limit int) (*Statement, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	cypher := "MATCH (n" + labelPattern(SplitLabels(labels)) + ")"
	params := map[string]interface{}{"limit": int64(limit)}
	if len(props) > 0 {
		cypher += " WHERE all(k IN keys($props) WHERE n[k] = $props[k])"
		params["props"] = props
	}
	cypher += " RETURN n LIMIT $limit"

	return &Statement{Cypher: cypher, Params: params, Column: "n"}, nil
}

// UpdateNode merges properties into the node with the element id
func UpdateNode(nodeID string, props map[string]interface{}) (*Statement, error) {
	if strings.TrimSpace(nodeID) == "" {
		return nil, errors.Errorf("nodeId is required")
	}
	if props == nil {
		return nil, errors.Errorf("properties is required")
	}
	return &Statement{
		Cypher:   "MATCH (n) WHERE elementId(n) = $id SET n += $props RETURN n",
		Params:   map[string]interface{}{"id": nodeID, "props": props},
		Write:    true,
		Column:   "n",
		Required: "node " + nodeID + " not found",
		Deleted:  true,
	}, nil
}

// DeleteNode deletes the node with the element id, detach removes its
// relationships first
func DeleteNode(nodeID string, detach bool) (*Statement, error) {
	if strings.TrimSpace(nodeID) == "" {
		return nil, errors.Errorf("nodeId is required")
	}

	del := "DELETE n"
	if detach {
		del = "DETACH DELETE n"
	}
	return &Statement{
		Cypher:   "MATCH (n) WHERE elementId(n) = $id WITH n, elementId(n) AS deletedId " + del + " RETURN deletedId",
		Params:   map[string]interface{}{"id": nodeID},
		Write:    true,
		Required: "node " + nodeID + " not found",
		Deleted:  true,
	}, nil
}

// CreateRelationship links two nodes given by element id
func CreateRelationship(fromID, toID, relType string, props map[string]interface{}) (*Statement, error) {
	if strings.TrimSpace(fromID) == "" {
		return nil, errors.Errorf("fromNodeId is required")
	}
	if strings.TrimSpace(toID) == "" {
		return nil, errors.Errorf("toNodeId is required")
	}
	relType = strings.TrimSpace(relType)
	if relType == "" {
		return nil, errors.Errorf("relationshipType is required")
	}
	if props == nil {
		props = map[string]interface{}{}
	}

	return &Statement{
		Cypher: "MATCH (a), (b) WHERE elementId(a) = $from AND elementId(b) = $to " +
			"CREATE (a)-[r:" + Quote(relType) + "]->(b) SET r = $props RETURN r",
		Params:   map[string]interface{}{"from": fromID, "to": toID, "props": props},
		Write:    true,
		Column:   "r",
		Required: "node " + fromID + " or " + toID + " not found",
	}, nil
}
