package types

import "time"

// DefaultDatabase the database used when the credentials do not name one
const DefaultDatabase = "neo4j"

// DefaultPort the default bolt port
const DefaultPort = 7687

// Connect timeouts used by the UI facing methods
const (
	LoadOptionsTimeout    = 3000 * time.Millisecond
	CredentialTestTimeout = 5000 * time.Millisecond
)

// Credential test status
const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Operations supported by the node
const (
	OperationExecuteQuery       = "executeQuery"
	OperationCreateNode         = "createNode"
	OperationMatchNodes         = "matchNodes"
	OperationUpdateNode         = "updateNode"
	OperationDeleteNode         = "deleteNode"
	OperationCreateRelationship = "createRelationship"
)

// Operations the known operations in display order
var Operations = []string{
	OperationExecuteQuery,
	OperationCreateNode,
	OperationMatchNodes,
	OperationUpdateNode,
	OperationDeleteNode,
	OperationCreateRelationship,
}

// Credentials the neo4jApi credential owned by the host
type Credentials struct {
	Host     string `json:"host"`
	Port     int    `json:"port,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database,omitempty"`
}

// Option a {name, value} pair used to populate UI pickers
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CredentialTestResult the result of a credential test
type CredentialTestResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FieldType the type of a resource mapper field
type FieldType string

// Field types
const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
)

// Field describes one input an operation expects when invoked as a tool
type Field struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	Display      bool      `json:"display"`
	DefaultMatch bool      `json:"defaultMatch"`
}

// ResourceMapperFields the fields returned by the resource mapping method
type ResourceMapperFields struct {
	Fields []Field `json:"fields"`
}

// Item one unit of workflow data
type Item map[string]interface{}
