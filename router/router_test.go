package router

import (
	"context"
	"errors"
	"testing"
	"time"

	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

var testCred = &types.Credentials{Host: "localhost", Username: "neo4j", Password: "secret"}

var keanu = driver.Node{
	ElementId: "4:db:1",
	Labels:    []string{"Person"},
	Props:     map[string]interface{}{"name": "Keanu", "born": int64(1964)},
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`Person`", Quote("Person"))
	assert.Equal(t, "`Per``son`", Quote("Per`son"))
	assert.Equal(t, "`first name`", Quote("first name"))
	assert.Equal(t, []string{"Person", "Actor"}, SplitLabels(" Person, ,Actor "))
	assert.Equal(t, []string{}, SplitLabels(""))
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, IsReadOnly("MATCH (n) RETURN n"))
	assert.True(t, IsReadOnly("CALL db.labels() YIELD label RETURN label"))
	assert.True(t, IsReadOnly("MATCH (n) RETURN n.offset AS reset"))
	assert.False(t, IsReadOnly("MATCH (n) SET n.seen = true"))
	assert.False(t, IsReadOnly("merge (n:Person {name: $name})"))
	assert.False(t, IsReadOnly("MATCH (n) DETACH DELETE n"))
	assert.False(t, IsReadOnly("LOAD  CSV FROM 'file:///a.csv' AS row RETURN row"))

	assert.True(t, IsReadOnly("CALL db.schema.visualization()"))
	assert.True(t, IsReadOnly("CALL db.index.fulltext.queryNodes('titles', 'matrix') YIELD node RETURN node"))
	assert.True(t, IsReadOnly("CALL apoc.meta.schema() YIELD value RETURN value"))
	assert.True(t, IsReadOnly("MATCH (n) CALL { WITH n RETURN n.name AS name } RETURN name"))
	assert.False(t, IsReadOnly("CALL db.createLabel('X')"))
	assert.False(t, IsReadOnly("CALL db.index.fulltext.createNodeIndex('titles', ['Movie'], ['title'])"))
	assert.False(t, IsReadOnly("MATCH (a), (b) CALL apoc.refactor.mergeNodes([a, b]) YIELD node RETURN node"))
	assert.False(t, IsReadOnly("CALL db.labels() YIELD label CALL db.createLabel(label + '2') RETURN label"))
}

func TestBuilders(t *testing.T) {
	stmt, err := CreateNode("Person, Act`or", map[string]interface{}{"name": "Keanu"})
	assert.Nil(t, err)
	assert.Equal(t, "CREATE (n:`Person`:`Act``or` $props) RETURN n", stmt.Cypher)
	assert.Equal(t, map[string]interface{}{"name": "Keanu"}, stmt.Params["props"])
	assert.True(t, stmt.Write)

	_, err = CreateNode(" , ", map[string]interface{}{})
	assert.EqualError(t, err, "labels is required")

	_, err = CreateNode("Person", nil)
	assert.EqualError(t, err, "properties is required")

	stmt, err = MatchNodes("Person", map[string]interface{}{"name": "Keanu"}, 0)
	assert.Nil(t, err)
	assert.Equal(t, "MATCH (n:`Person`) WHERE all(k IN keys($props) WHERE n[k] = $props[k]) RETURN n LIMIT $limit", stmt.Cypher)
	assert.Equal(t, int64(DefaultLimit), stmt.Params["limit"])
	assert.False(t, stmt.Write)

	stmt, err = MatchNodes("", nil, 5)
	assert.Nil(t, err)
	assert.Equal(t, "MATCH (n) RETURN n LIMIT $limit", stmt.Cypher)
	assert.Equal(t, int64(5), stmt.Params["limit"])

	stmt, err = UpdateNode("4:db:1", map[string]interface{}{"born": 1964})
	assert.Nil(t, err)
	assert.Equal(t, "MATCH (n) WHERE elementId(n) = $id SET n += $props RETURN n", stmt.Cypher)
	assert.Equal(t, "4:db:1", stmt.Params["id"])

	_, err = UpdateNode("", map[string]interface{}{})
	assert.EqualError(t, err, "nodeId is required")

	stmt, err = DeleteNode("4:db:1", true)
	assert.Nil(t, err)
	assert.Contains(t, stmt.Cypher, "DETACH DELETE n")
	assert.True(t, stmt.Deleted)

	stmt, err = DeleteNode("4:db:1", false)
	assert.Nil(t, err)
	assert.NotContains(t, stmt.Cypher, "DETACH")

	stmt, err = CreateRelationship("4:db:1", "4:db:2", "ACTED_IN", nil)
	assert.Nil(t, err)
	assert.Equal(t, "MATCH (a), (b) WHERE elementId(a) = $from AND elementId(b) = $to CREATE (a)-[r:`ACTED_IN`]->(b) SET r = $props RETURN r", stmt.Cypher)
	assert.Equal(t, map[string]interface{}{}, stmt.Params["props"])

	_, err = CreateRelationship("4:db:1", "4:db:2", " ", nil)
	assert.EqualError(t, err, "relationshipType is required")

	stmt, err = ExecuteQuery("MATCH (n) RETURN n", nil)
	assert.Nil(t, err)
	assert.False(t, stmt.Write)
	assert.Equal(t, map[string]interface{}{}, stmt.Params)

	_, err = ExecuteQuery("  ", nil)
	assert.EqualError(t, err, "query is required")
}

func TestExecuteCreateNode(t *testing.T) {
	conn := &neo4j.MockConn{
		WriteFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return []*driver.Record{neo4j.NewRecord([]string{"n"}, keanu)}, nil
		},
	}
	defer conn.Use()()

	hctx := &host.Mock{
		Cred: testCred,
		Params: map[string]interface{}{
			"operation":  types.OperationCreateNode,
			"labels":     "Person",
			"properties": `{"name": "Keanu", "born": 1964}`,
		},
	}

	items, err := Execute(context.Background(), hctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, items, 1)
	assert.Equal(t, "4:db:1", items[0]["elementId"])
	assert.Equal(t, []string{"Person"}, items[0]["labels"])
	assert.Equal(t, "Keanu", items[0]["properties"].(map[string]interface{})["name"])

	queries := conn.Queries()
	assert.Len(t, queries, 1)
	assert.True(t, queries[0].Write)
	assert.Equal(t, map[string]interface{}{"name": "Keanu", "born": float64(1964)}, queries[0].Params["props"])
	assert.Equal(t, 1, conn.Dialed())
	assert.Equal(t, 1, conn.Closed())
	assert.Equal(t, time.Duration(0), conn.Timeout())
}

func TestExecuteQuery(t *testing.T) {
	conn := &neo4j.MockConn{
		ReadFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return []*driver.Record{
				neo4j.NewRecord([]string{"name", "n"}, "Keanu", keanu),
				neo4j.NewRecord([]string{"name", "n"}, "Carrie", nil),
			}, nil
		},
	}
	defer conn.Use()()

	hctx := &host.Mock{
		Cred: testCred,
		Params: map[string]interface{}{
			"operation":  types.OperationExecuteQuery,
			"query":      "MATCH (n:Person) WHERE n.born > $born RETURN n.name AS name, n",
			"parameters": `{'born': 1960,}`,
		},
	}

	items, err := Execute(context.Background(), hctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, items, 2)
	assert.Equal(t, "Keanu", items[0]["name"])
	assert.Equal(t, "4:db:1", items[0]["n"].(map[string]interface{})["elementId"])
	assert.Nil(t, items[1]["n"])

	queries := conn.Queries()
	assert.False(t, queries[0].Write)
	assert.Equal(t, float64(1960), queries[0].Params["born"])
}

func TestExecuteQueryDeletedIdColumn(t *testing.T) {
	conn := &neo4j.MockConn{
		ReadFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			return []*driver.Record{neo4j.NewRecord([]string{"deletedId", "name"}, "4:db:1", "Keanu")}, nil
		},
	}
	defer conn.Use()()

	items, err := Execute(context.Background(), &host.Mock{
		Cred: testCred,
		Params: map[string]interface{}{
			"operation": types.OperationExecuteQuery,
			"query":     "MATCH (n:Person) RETURN elementId(n) AS deletedId, n.name AS name",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []types.Item{{"deletedId": "4:db:1", "name": "Keanu"}}, items)
}

func TestExecuteWriteProcedure(t *testing.T) {
	conn := &neo4j.MockConn{}
	defer conn.Use()()

	_, err := Execute(context.Background(), &host.Mock{
		Cred: testCred,
		Params: map[string]interface{}{
			"operation": types.OperationExecuteQuery,
			"query":     "CALL db.createLabel('Director')",
		},
	})
	assert.Nil(t, err)
	queries := conn.Queries()
	if assert.Len(t, queries, 1) {
		assert.True(t, queries[0].Write)
	}
}

func TestExecuteDialError(t *testing.T) {
	prev := neo4j.Dial
	defer func() { neo4j.Dial = prev }()
	neo4j.Dial = func(ctx context.Context, cred types.Credentials, timeout time.Duration) (neo4j.Conn, error) {
		return nil, &driver.Neo4jError{Code: neo4j.CodeUnauthorized, Msg: "bad credentials"}
	}

	_, err := Execute(context.Background(), &host.Mock{Cred: testCred})
	assert.EqualError(t, err, "Authentication failed: invalid username or password")

	var neoErr *driver.Neo4jError
	if assert.True(t, errors.As(err, &neoErr)) {
		assert.Equal(t, neo4j.CodeUnauthorized, neoErr.Code)
	}
}

func TestExecuteItems(t *testing.T) {
	conn := &neo4j.MockConn{
		WriteFunc: func(cypher string, params map[string]interface{}) ([]*driver.Record, error) {
			if params["id"] == "4:db:404" {
				return nil, nil
			}
			return []*driver.Record{neo4j.NewRecord([]string{"deletedId"}, params["id"])}, nil
		},
	}
	defer conn.Use()()

	hctx := &host.Mock{
		Cred:   testCred,
		Params: map[string]interface{}{"operation": types.OperationDeleteNode},
		ItemParams: []map[string]interface{}{
			{"nodeId": "4:db:1", "detach": false},
			{"nodeId": "4:db:404"},
			{},
		},
		Input:    []types.Item{{}, {}, {}},
		Continue: true,
	}

	items, err := Execute(context.Background(), hctx)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []types.Item{
		{"deleted": true, "nodeId": "4:db:1"},
		{"error": "node 4:db:404 not found"},
		{"error": "nodeId is required"},
	}, items)

	queries := conn.Queries()
	assert.Len(t, queries, 2)
	assert.NotContains(t, queries[0].Cypher, "DETACH")
	assert.Contains(t, queries[1].Cypher, "DETACH DELETE")
	assert.Equal(t, 1, conn.Closed())

	hctx.Continue = false
	_, err = Execute(context.Background(), hctx)
	assert.EqualError(t, err, "item 1: node 4:db:404 not found")
	assert.Equal(t, 2, conn.Closed())
}

func TestExecuteErrors(t *testing.T) {
	conn := &neo4j.MockConn{}
	defer conn.Use()()

	_, err := Execute(context.Background(), &host.Mock{})
	assert.Equal(t, host.ErrNoCredentials, err)

	_, err = Execute(context.Background(), &host.Mock{Cred: &types.Credentials{Host: "localhost"}})
	assert.EqualError(t, err, "Missing required credential fields: username, password")
	assert.Equal(t, 0, conn.Dialed())

	_, err = Execute(context.Background(), &host.Mock{Cred: testCred, Params: map[string]interface{}{"operation": "dropDatabase"}})
	assert.EqualError(t, err, `item 0: operation "dropDatabase" does not support`)
	assert.Equal(t, 1, conn.Closed())

	_, err = Execute(context.Background(), &host.Mock{Cred: testCred, Params: map[string]interface{}{
		"operation":  types.OperationCreateNode,
		"labels":     "Person",
		"properties": `[1, 2]`,
	}})
	assert.Error(t, err)
	assert.Empty(t, conn.Queries())
}

func TestValueOf(t *testing.T) {
	rel := driver.Relationship{
		ElementId:      "5:db:1",
		StartElementId: "4:db:1",
		EndElementId:   "4:db:2",
		Type:           "ACTED_IN",
		Props:          map[string]interface{}{"roles": []interface{}{"Neo"}},
	}
	path := driver.Path{Nodes: []driver.Node{keanu, {ElementId: "4:db:2"}}, Relationships: []driver.Relationship{rel}}

	value := ValueOf(path).(map[string]interface{})
	assert.Equal(t, 1, value["length"])
	nodes := value["nodes"].([]interface{})
	assert.Len(t, nodes, 2)
	assert.Equal(t, []string{}, nodes[1].(map[string]interface{})["labels"])
	rels := value["relationships"].([]interface{})
	assert.Equal(t, "ACTED_IN", rels[0].(map[string]interface{})["type"])
	assert.Equal(t, "4:db:2", rels[0].(map[string]interface{})["endNodeElementId"])

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T12:00:00Z", ValueOf(at))
	assert.Equal(t, []interface{}{"2024-05-01T12:00:00Z", int64(1)}, ValueOf([]interface{}{at, int64(1)}))
	assert.Equal(t, map[string]interface{}{"at": "2024-05-01T12:00:00Z"}, ValueOf(map[string]interface{}{"at": at}))

	item := ItemOf(neo4j.NewRecord([]string{"r"}, rel))
	assert.Equal(t, "5:db:1", item["r"].(map[string]interface{})["elementId"])
}
