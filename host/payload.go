package host

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/node-neo4j/types"
)

// Payload the argument a host sends with every method call
//
//	{
//	  "parameters": {"operation": "createNode", "labels": "Person"},
//	  "credentials": {"neo4jApi": {"host": "localhost", "port": 7687, ...}},
//	  "credentialId": "movies",
//	  "items": [{"json": {...}, "parameters": {"properties": {...}}}],
//	  "continueOnFail": false
//	}
type Payload struct {
	Parameters      map[string]interface{} `json:"parameters,omitempty"`
	CredentialsData map[string]interface{} `json:"credentials,omitempty"`
	CredentialID    string                 `json:"credentialId,omitempty"`
	InputItems      []PayloadItem          `json:"items,omitempty"`
	Continue        bool                   `json:"continueOnFail,omitempty"`
	store           CredentialStore
}

// PayloadItem one input item with its own parameter overrides
type PayloadItem struct {
	JSON       types.Item             `json:"json,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// PayloadOf decodes the payload argument of a call. It accepts a *Payload,
// a map, JSON bytes or a JSON string.
func PayloadOf(value interface{}) (*Payload, error) {
	payload := &Payload{}
	switch v := value.(type) {
	case nil:
		return payload, nil

	case *Payload:
		if v == nil {
			return payload, nil
		}
		return v, nil

	case Payload:
		return &v, nil

	case []byte:
		if len(v) == 0 {
			return payload, nil
		}
		if err := jsoniter.Unmarshal(v, payload); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		return payload, nil

	case string:
		return PayloadOf([]byte(v))
	}

	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	if err := jsoniter.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return payload, nil
}

// WithStore sets the store used to resolve CredentialID
func (p *Payload) WithStore(store CredentialStore) *Payload {
	p.store = store
	return p
}

// Parameter implements Context, item overrides win over node parameters
func (p *Payload) Parameter(name string, index int) (interface{}, bool) {
	if index >= 0 && index < len(p.InputItems) {
		if value, has := p.InputItems[index].Parameters[name]; has {
			return value, true
		}
	}
	value, has := p.Parameters[name]
	return value, has
}

// Credentials implements Context. Lookup order: the named entry of the
// credentials object, a flat credentials object, then the store.
func (p *Payload) Credentials(ctx context.Context, name string) (types.Credentials, error) {
	if data, has := p.CredentialsData[name]; has {
		return types.CredentialsOf(data)
	}

	if _, has := p.CredentialsData["host"]; has {
		return types.CredentialsOf(p.CredentialsData)
	}

	if p.CredentialID != "" {
		if p.store == nil {
			return types.Credentials{}, fmt.Errorf("credential %s: no credential store", p.CredentialID)
		}
		return p.store.Credentials(ctx, p.CredentialID)
	}

	return types.Credentials{}, fmt.Errorf("credentials %s are required", name)
}

// Items implements Context
func (p *Payload) Items() []types.Item {
	if len(p.InputItems) == 0 {
		return []types.Item{{}}
	}
	items := make([]types.Item, len(p.InputItems))
	for i, item := range p.InputItems {
		items[i] = item.JSON
		if items[i] == nil {
			items[i] = types.Item{}
		}
	}
	return items
}

// ContinueOnFail implements Context
func (p *Payload) ContinueOnFail() bool {
	return p.Continue
}
