// Package host defines what a node method can ask of the automation host
// during a single call: parameter values, credentials and input items.
package host

import (
	"context"

	"github.com/yaoapp/kun/any"
	"github.com/yaoapp/node-neo4j/types"
)

// CredentialName the credential type the node declares
const CredentialName = "neo4jApi"

// Context the host side of one method call
type Context interface {
	// Parameter returns the value of a node parameter for the item at index
	Parameter(name string, index int) (interface{}, bool)

	// Credentials returns the decrypted credential with the given name
	Credentials(ctx context.Context, name string) (types.Credentials, error)

	// Items the input items of the call, at least one
	Items() []types.Item

	// ContinueOnFail reports whether item failures become output items
	ContinueOnFail() bool
}

// CredentialStore resolves stored credentials by id
type CredentialStore interface {
	Credentials(ctx context.Context, id string) (types.Credentials, error)
}

// String reads a string parameter
func String(hctx Context, name string, index int, defaults ...string) string {
	value, has := hctx.Parameter(name, index)
	if !has || value == nil {
		if len(defaults) > 0 {
			return defaults[0]
		}
		return ""
	}
	if v, ok := value.(string); ok {
		return v
	}
	return any.Of(value).CString()
}

// Int reads an integer parameter
func Int(hctx Context, name string, index int, defaults ...int) int {
	value, has := hctx.Parameter(name, index)
	if !has || value == nil || value == "" {
		if len(defaults) > 0 {
			return defaults[0]
		}
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return any.Of(value).CInt()
}

// Bool reads a boolean parameter
func Bool(hctx Context, name string, index int, defaults ...bool) bool {
	value, has := hctx.Parameter(name, index)
	if !has || value == nil || value == "" {
		if len(defaults) > 0 {
			return defaults[0]
		}
		return false
	}
	if v, ok := value.(bool); ok {
		return v
	}
	return any.Of(value).CBool()
}

// Value reads a parameter as is, nil when it is not set
func Value(hctx Context, name string, index int) interface{} {
	value, _ := hctx.Parameter(name, index)
	return value
}
