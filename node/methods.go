package node

import (
	"context"
	"strings"

	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

// Method names of the node method table
const (
	MethodDescribe               = "describe"
	MethodCredentialTest         = "credentialTest"
	MethodResourceMapping        = "resourceMapping"
	MethodExecute                = "execute"
	LoadOptionsNodeLabels        = "getNodeLabels"
	LoadOptionsRelationshipTypes = "getRelationshipTypes"
	LoadOptionsPropertyKeys      = "getPropertyKeys"
	loadOptionsPrefix            = "loadOptions."
)

// Queries of the load options methods
const (
	QueryNodeLabels        = "CALL db.labels() YIELD label RETURN label ORDER BY label"
	QueryRelationshipTypes = "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType ORDER BY relationshipType"
	QueryPropertyKeys      = "CALL db.propertyKeys() YIELD propertyKey RETURN propertyKey ORDER BY propertyKey"
)

// CredentialTest checks the credentials can reach the database. Missing
// fields are reported without connecting.
func CredentialTest(ctx context.Context, cred types.Credentials) types.CredentialTestResult {
	if err := cred.Validate(); err != nil {
		return types.CredentialTestResult{Status: types.StatusError, Message: err.Error()}
	}

	if err := neo4j.Verify(ctx, cred, types.CredentialTestTimeout); err != nil {
		log.With(log.F{"target": cred.Target()}).Warn("[node] credential test failed: %s", err.Error())
		return types.CredentialTestResult{Status: types.StatusError, Message: neo4j.ParseError(err)}
	}

	return types.CredentialTestResult{Status: types.StatusOK, Message: "Connection tested successfully!"}
}

// GetNodeLabels lists the node labels of the database
func GetNodeLabels(ctx context.Context, hctx host.Context) []types.Option {
	return loadOptions(ctx, hctx, QueryNodeLabels, "label")
}

// GetRelationshipTypes lists the relationship types of the database
func GetRelationshipTypes(ctx context.Context, hctx host.Context) []types.Option {
	return loadOptions(ctx, hctx, QueryRelationshipTypes, "relationshipType")
}

// GetPropertyKeys lists the property keys of the database
func GetPropertyKeys(ctx context.Context, hctx host.Context) []types.Option {
	// TODO: narrow the keys to the label picked in the "labels" parameter
	// once the picker sends it, db.propertyKeys() lists every key in use
	return loadOptions(ctx, hctx, QueryPropertyKeys, "propertyKey")
}

// LoadOptions the load options method by name, with or without the
// "loadOptions." prefix
func LoadOptions(name string) (func(ctx context.Context, hctx host.Context) []types.Option, bool) {
	switch strings.TrimPrefix(name, loadOptionsPrefix) {
	case LoadOptionsNodeLabels:
		return GetNodeLabels, true
	case LoadOptionsRelationshipTypes:
		return GetRelationshipTypes, true
	case LoadOptionsPropertyKeys:
		return GetPropertyKeys, true
	}
	return nil, false
}

func loadOptions(ctx context.Context, hctx host.Context, cypher string, column string) []types.Option {
	cred, err := hctx.Credentials(ctx, host.CredentialName)
	if err != nil {
		return neo4j.ErrorOptions(err)
	}
	return neo4j.Options(ctx, cred, types.LoadOptionsTimeout, cypher, column)
}
